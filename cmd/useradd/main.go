// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command useradd creates a login account in the image keeper user database
// or resets the password of an existing one.
//
// The database is selected by the same STORAGE_DB_* environment variables
// (or CONFIG JSON file) the server reads. The password is prompted for on
// the terminal, or read from the first line of stdin when it is piped.
//
//	useradd -username alice
//	useradd -username alice -reset
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

	"github.com/MKhiriev/go-image-keeper/internal/config"
	"github.com/MKhiriev/go-image-keeper/internal/crypto"
	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/MKhiriev/go-image-keeper/internal/service"
	"github.com/MKhiriev/go-image-keeper/internal/store"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin))
}

// run returns the process exit code. Deferred cleanup runs before main
// exits.
func run(args []string, stdin *os.File) int {
	var (
		username string
		reset    bool
	)

	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.StringVar(&username, "username", "", "login name of the account")
	fs.BoolVar(&reset, "reset", false, "reset the password of an existing account")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logger.NewLogger("useradd")

	if username == "" {
		fs.Usage()
		return 2
	}

	cfg, err := config.GetStorageConfig()
	if err != nil {
		log.Error().Err(err).Msg("error getting storage configs")
		return 1
	}

	password, err := readPassword(stdin, os.Stderr)
	if err != nil {
		log.Error().Err(err).Msg("error reading password")
		return 1
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating storages")
		return 1
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	// token settings are not needed to create accounts
	auth := service.NewAuthService(
		storages.UserRepository,
		storages.SessionRepository,
		crypto.NewPasswordHasher(),
		config.App{},
		log,
	)

	if reset {
		err = auth.SetPassword(ctx, username, password)
	} else {
		_, err = auth.CreateUser(ctx, username, password)
	}

	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		fmt.Fprintf(os.Stderr, "user %q already exists, use -reset to change the password\n", username)
		return 1
	case errors.Is(err, service.ErrUserNotFound):
		fmt.Fprintf(os.Stderr, "user %q does not exist\n", username)
		return 1
	case err != nil:
		log.Error().Err(err).Msg("error saving user")
		return 1
	}

	if reset {
		fmt.Printf("password of %q updated\n", username)
	} else {
		fmt.Printf("user %q created\n", username)
	}
	return 0
}

// readPassword prompts twice on a terminal. Piped input is read as a
// single line.
func readPassword(in *os.File, prompt io.Writer) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return "", errors.New("empty password")
		}
		return password, nil
	}

	fmt.Fprint(prompt, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", err
	}

	fmt.Fprint(prompt, "Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("empty password")
	}
	return string(first), nil
}
