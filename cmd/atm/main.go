package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/cashpoint/atm-client/internal/apperrors"
	"github.com/cashpoint/atm-client/internal/config"
	"github.com/cashpoint/atm-client/internal/gateway"
	"github.com/cashpoint/atm-client/internal/models"
	"github.com/cashpoint/atm-client/internal/services"
	"github.com/cashpoint/atm-client/internal/session"
)

// quickAmounts mirror the preset buttons on the dashboard.
var quickAmounts = []string{"20", "50", "100", "200", "500", "1000"}

func main() {
	config.Init()
	cfg := config.GetConfig()

	baseURL, err := url.Parse(cfg.BackendURL)
	if err != nil {
		log.Fatalf("Invalid backend URL %q: %v", cfg.BackendURL, err)
	}

	kv, err := buildKeyValueStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize session storage: %v", err)
	}

	gw := gateway.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, *baseURL)
	sessions := session.NewStore(kv)
	sessions.Restore()

	auth := services.NewAuthService(gw, sessions)
	transactions := services.NewTransactionService(gw, sessions)
	history := services.NewHistoryService(gw, sessions, cfg.HistoryPageSize)

	run(auth, transactions, history)
}

func buildKeyValueStore(cfg *config.Config) (session.KeyValueStore, error) {
	if cfg.SessionBackend == "redis" {
		if rdb := session.InitRedis(cfg.RedisHost+":"+cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
			return session.NewRedisStore(rdb), nil
		}
		// Unreachable Redis falls back to the file store.
	}
	return session.NewFileStore(cfg.SessionDir)
}

func run(auth *services.AuthService, transactions *services.TransactionService, history *services.HistoryService) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("CashPoint ATM")
	if sess := auth.Session(); sess != nil {
		fmt.Printf("Welcome back, %s\n", sess.User.Username)
	}
	printHelp()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "login":
			doLogin(ctx, auth, scanner)
		case "balance":
			doBalance(ctx, auth, transactions)
		case "deposit":
			doTransaction(ctx, transactions.Deposit, fields, "Deposit completed successfully.")
		case "withdraw":
			doTransaction(ctx, transactions.Withdraw, fields, "Withdrawal completed successfully. Please collect your cash.")
		case "history":
			printPage(history.LoadPage(ctx, 1))
		case "next":
			printPage(history.Next(ctx))
		case "prev":
			printPage(history.Prev(ctx))
		case "logout":
			if err := auth.Logout(); err != nil {
				fmt.Printf("Logout failed: %v\n", err)
			} else {
				fmt.Println("Logged out.")
			}
		case "help":
			printHelp()
		case "exit", "quit":
			return
		default:
			fmt.Printf("Unknown command %q, try 'help'\n", fields[0])
		}
	}
}

func doLogin(ctx context.Context, auth *services.AuthService, scanner *bufio.Scanner) {
	fmt.Print("Email: ")
	if !scanner.Scan() {
		return
	}
	email := strings.TrimSpace(scanner.Text())

	fmt.Print("Password: ")
	if !scanner.Scan() {
		return
	}
	password := scanner.Text()

	creds := models.Credentials{Email: email, Password: password}
	if err := auth.Login(ctx, creds); err != nil {
		fmt.Println(apperrors.UserMessage(err, "Login failed. Please try again."))
		return
	}
	fmt.Printf("Welcome, %s\n", auth.Session().User.Username)
}

func doBalance(ctx context.Context, auth *services.AuthService, transactions *services.TransactionService) {
	if err := transactions.RefreshBalance(ctx); err != nil {
		fmt.Println(apperrors.UserMessage(err, "Could not refresh balance."))
		return
	}
	fmt.Printf("Balance: %s\n", auth.Session().Account.Balance.StringFixed(2))
}

func doTransaction(ctx context.Context, op func(context.Context, string) error, fields []string, success string) {
	if len(fields) < 2 {
		fmt.Printf("Usage: %s AMOUNT (quick amounts: %s)\n", fields[0], strings.Join(quickAmounts, ", "))
		return
	}
	if err := op(ctx, fields[1]); err != nil {
		fmt.Println(apperrors.UserMessage(err, "Transaction failed"))
		return
	}
	fmt.Println(success)
}

func printPage(page models.HistoryPage, err error) {
	if err != nil {
		fmt.Println(apperrors.UserMessage(err, "Failed to fetch history"))
		return
	}
	if len(page.Content) == 0 {
		fmt.Println("No transactions yet.")
		return
	}
	for _, tx := range page.Content {
		fmt.Printf("%-8d %-9s %12s  %s\n", tx.ID, tx.Type, tx.Amount.StringFixed(2), tx.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("Showing page %d of %d\n", page.PageNo, page.TotalPages)
}

func printHelp() {
	fmt.Println("Commands: login, balance, deposit AMOUNT, withdraw AMOUNT, history, next, prev, logout, exit")
}
