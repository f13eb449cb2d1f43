package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/w-h-a/recall"
	"github.com/w-h-a/recall/cmd/internal/wiring"
)

var (
	cfg struct {
		wiring.Config
	}
)

func main() {
	_ = kong.Parse(&cfg)
	ctx := context.Background()

	client, err := wiring.NewClient(cfg.Config)
	if err != nil {
		log.Fatalf("failed to build client: %v", err)
	}
	defer client.Close()

	fmt.Println("recall chat. Type a message and press enter. /clear resets history, /quit exits.")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Error reading input:", err)
			continue
		}
		input = strings.TrimSpace(input)

		switch input {
		case "":
			continue
		case "/quit":
			return
		case "/clear":
			if err := client.Reset(ctx); err != nil {
				fmt.Println("failed to clear history:", err)
			} else {
				fmt.Println("history cleared")
			}
			continue
		}

		respond(ctx, client, input)
	}
}

func respond(ctx context.Context, client *recall.Client, input string) {
	turnCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	turn, err := client.Send(turnCtx, input)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if turn.GenerationFailed {
		fmt.Printf("(!) %s\n", turn.Reply)
		return
	}

	fmt.Println(turn.Reply)
}
