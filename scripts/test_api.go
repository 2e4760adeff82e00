package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout, generation can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	userToken := os.Getenv("TEST_USER_TOKEN")
	if userToken == "" {
		color.Red("TEST_USER_TOKEN is not set")
		os.Exit(1)
	}

	color.Cyan("🚀 Starting CharStudio API Test\n")

	// 1. Health check
	color.Yellow("\n1. Health Check")
	resp, body, err := sendRequest("GET", "/health", "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var healthResp map[string]interface{}
	json.Unmarshal(body, &healthResp)
	prettyPrint(healthResp)

	// 2. Profile (lazily creates the account)
	color.Yellow("\n2. Get Profile")
	resp, body, err = sendRequest("GET", "/auth/me", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var profileResp map[string]interface{}
	json.Unmarshal(body, &profileResp)
	prettyPrint(profileResp)

	// 3. Generate a character (first one should be free)
	color.Yellow("\n3. Generate Character")
	genReq := map[string]interface{}{
		"prompt": "a red fox wearing sunglasses",
		"style":  "3D Render",
		"type":   "basic",
	}
	resp, body, err = sendRequest("POST", "/generate/character", userToken, genReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var genResp map[string]interface{}
	json.Unmarshal(body, &genResp)
	if url, ok := genResp["image_url"].(string); ok && len(url) > 80 {
		genResp["image_url"] = url[:80] + "..."
	}
	prettyPrint(genResp)

	// 4. List projects (newest first)
	color.Yellow("\n4. List Projects")
	resp, body, err = sendRequest("GET", "/projects", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var projectsResp map[string]interface{}
	json.Unmarshal(body, &projectsResp)
	var projectID string
	if projects, ok := projectsResp["projects"].([]interface{}); ok {
		fmt.Printf("Projects: %d\n", len(projects))
		if len(projects) > 0 {
			if p, ok := projects[0].(map[string]interface{}); ok {
				if id, ok := p["id"].(string); ok {
					projectID = id
					fmt.Printf("Latest Project ID: %s\n", projectID)
				}
			}
		}
	}

	// 5. Modify the latest project
	if projectID != "" {
		color.Yellow("\n5. Modify Character")
		modReq := map[string]interface{}{
			"projectId":          projectID,
			"modificationPrompt": "give it a blue scarf",
		}
		resp, body, err = sendRequest("POST", "/generate/modify", userToken, modReq)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
			var modResp map[string]interface{}
			json.Unmarshal(body, &modResp)
			if url, ok := modResp["image_url"].(string); ok && len(url) > 80 {
				modResp["image_url"] = url[:80] + "..."
			}
			prettyPrint(modResp)
		}
	} else {
		color.Red("\n[SKIP] Modify skipped (no project returned)")
	}

	// 6. Create checkout session
	color.Yellow("\n6. Create Checkout Session")
	resp, body, err = sendRequest("POST", "/payments/create-checkout-session", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var checkoutResp map[string]interface{}
		json.Unmarshal(body, &checkoutResp)
		prettyPrint(checkoutResp)
	}

	color.Cyan("\n✅ Test Sequence Complete")
}
