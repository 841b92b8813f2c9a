package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ironsheep/depth-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("depth-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("depth-tools-mcp - MCP server for depth capture analysis")
			fmt.Println()
			fmt.Println("Usage: depth-tools-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  DEPTH_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  DEPTH_MCP_DATA_DIR=<dir>     Default capture directory (DepthData.bin + IR.jpg)")
			fmt.Println("  DEPTH_MCP_WORKERS=<n>        Goroutines used to colorize a frame (default: GOMAXPROCS)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("DEPTH_MCP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Depth MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	opts := []server.Option{
		server.WithDataDir(os.Getenv("DEPTH_MCP_DATA_DIR")),
		server.WithDebug(debug),
	}
	if v := os.Getenv("DEPTH_MCP_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Fatalf("invalid DEPTH_MCP_WORKERS %q", v)
		}
		opts = append(opts, server.WithWorkers(n))
	}

	srv := server.New(opts...)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
