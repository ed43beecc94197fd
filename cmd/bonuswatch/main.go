package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gigspace/pkg/claimctl"

	"github.com/goccy/go-json"
)

// bonuswatch logs in, watches the daily bonus cooldown from the
// terminal and claims as soon as the server allows it.
func main() {
	addr := flag.String("addr", "http://localhost:8888", "API base URL")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	token := flag.String("token", "", "session token (skips login)")
	autoClaim := flag.Bool("claim", true, "claim automatically when available")
	flag.Parse()

	sessionToken := *token
	if sessionToken == "" {
		if *email == "" || *password == "" {
			log.Fatal("either -token or -email and -password are required")
		}
		t, err := login(*addr, *email, *password)
		if err != nil {
			log.Fatal("login: ", err)
		}
		sessionToken = t
	}

	client := claimctl.NewClient(*addr, sessionToken)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshots := make(chan claimctl.Snapshot, 64)
	controller := claimctl.NewController(client, client, func(s claimctl.Snapshot) {
		snapshots <- s
	}, nil)

	go watch(ctx, controller, snapshots, *autoClaim)

	if err := controller.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("controller: ", err)
	}
	fmt.Println()
}

func watch(ctx context.Context, controller *claimctl.Controller, snapshots <-chan claimctl.Snapshot, autoClaim bool) {
	claimed := false
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-snapshots:
			switch s.Mode {
			case claimctl.ModeCooldown:
				claimed = false
				fmt.Printf("\rnext claim in %-12s balance %d GC, streak %d", s.Label, s.Balance, s.Streak)
			case claimctl.ModeClaimable:
				fmt.Printf("\rdaily bonus available! balance %d GC, streak %d\n", s.Balance, s.Streak)
				if autoClaim && !claimed {
					claimed = true
					result, err := controller.Claim(ctx)
					if err != nil {
						log.Println("claim:", err)
						continue
					}
					fmt.Printf("%s (+%d GC, balance %d)\n", result.Message, result.Amount, result.NewBalance)
				}
			}
		}
	}
}

func login(addr, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	resp, err := http.Post(addr+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", fmt.Errorf("%s", out.Message)
	}
	return out.Token, nil
}
