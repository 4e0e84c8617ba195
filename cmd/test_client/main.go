package main

import (
	"context"
	"fmt"
	"log"
	"os"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultEndpoint = "http://localhost:8080/mcp/stream"

func main() {
	ctx := context.Background()

	endpoint := os.Getenv("MCP_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "silver-talent-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testVacancySearch(ctx, session)
	testBlogSearch(ctx, session)
	testContactInfo(ctx, session)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, t := range res.Tools {
		fmt.Printf("  %s: %s\n", t.Name, t.Description)
	}
}

func testVacancySearch(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: vacancy_search")

	// sentinel category must not reach the backend
	params := &mcp.CallToolParams{
		Name: "vacancy_search",
		Arguments: map[string]any{
			"query":    "React",
			"category": "All Categories",
			"limit":    5,
		},
	}

	result, err := session.CallTool(ctx, params)
	if err != nil {
		log.Printf("vacancy_search failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("vacancy_search passed")
}

func testBlogSearch(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: blog_search")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "blog_search",
		Arguments: map[string]any{"search": "interview"},
	})
	if err != nil {
		log.Printf("blog_search failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("blog_search passed")
}

func testContactInfo(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: contact_info")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "contact_info",
		Arguments: map[string]any{},
	})
	if err != nil {
		log.Printf("contact_info failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("contact_info passed")
}

func printResult(res *mcp.CallToolResult) {
	if res.IsError {
		fmt.Print("(error) ")
	}
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
