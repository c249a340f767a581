// File: cmd/createsuperuser/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"income-expenses-api/internal/database"
	"income-expenses-api/internal/service"

	"golang.org/x/term"
)

var (
	newPgxPool      = database.NewPgxPool
	createSuperuser = service.CreateSuperuser
	lookupEnv       = os.LookupEnv
	exitFunc        = os.Exit
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			exitFunc(0)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email")
	name := fs.String("name", "", "Full name (optional)")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dbURL := fs.String("db", "", "Postgres URL (defaults to DATABASE_URL)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(stdout, "Usage: createsuperuser -email <email> [-name <full name>] [-password <password>] [-db <url>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email")
	}

	if *dbURL == "" {
		v, ok := lookupEnv("DATABASE_URL")
		if !ok || v == "" {
			return fmt.Errorf("環境變數 DATABASE_URL 未設定")
		}
		*dbURL = v
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	ctx := context.Background()
	db, err := newPgxPool(ctx, *dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	in := service.NewUser{Email: *email, Password: password}
	if *name != "" {
		in.FullName = name
	}
	u, err := createSuperuser(ctx, db, in)
	if err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}

	fmt.Fprintf(stdout, "Superuser %s created successfully with ID %d\n", u.Email, u.ID)
	return nil
}

// readPassword 在終端機上隱藏輸入；非終端機(管線、測試)時讀取一行
func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
