package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"tour-planner/cmd/planner/auth"
	"tour-planner/cmd/planner/clients/plannerclient"
	"tour-planner/cmd/planner/console"
	"tour-planner/cmd/planner/flow"
	"tour-planner/cmd/planner/httpclient"
	"tour-planner/config"
	"tour-planner/internal/logger"
)

const usage = `commands: /credits  request more credits after an insufficient-credits error
          /reset    start over (same as "Modify Preferences")
          /quit     exit`

func main() {
	var (
		city       = flag.String("city", "", "plan for this city only (skips the city question)")
		configPath = flag.String("config", "", "path to config.yaml (default: searched upward from the working directory)")
		saveToken  = flag.String("token", "", "store this bearer token in the token file and exit")
	)
	flag.Parse()

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		config.SetConfig(cfg)
	} else {
		config.InitApp()
	}
	cfg := config.GetConfig()

	// stdout 은 대화 화면이므로 로그는 stderr 로 보낸다.
	logger.InitFromEnv("LOG_LEVEL", cfg.Logging.Level, os.Stderr)

	tokenFile := auth.FileTokenSource{Path: resolvePath(cfg.Auth.TokenFile)}
	if *saveToken != "" {
		if err := tokenFile.Save(*saveToken); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("token saved to %s\n", tokenFile.Path)
		return
	}

	tokens := auth.ChainTokenSource{auth.EnvTokenSource{Key: cfg.Auth.TokenEnv}, tokenFile}
	client := plannerclient.New(cfg.API.BaseURL, tokens, httpclient.Config{Timeout: cfg.API.Timeout()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []flow.Option{flow.WithCallObserver(showProgress)}
	if *city != "" {
		opts = append(opts, flow.WithFixedCity(*city))
	}
	f := flow.New(client, opts...)
	defer f.Close()

	logger.InfoWithFields("planner started", logger.Fields{
		"session_id": f.SessionID(),
		"base_url":   cfg.API.BaseURL,
		"fixed_city": *city,
	})

	// Ctrl+C 는 진행 중인 호출까지 취소한다.
	go func() {
		<-ctx.Done()
		f.Close()
	}()

	renderer := console.NewRenderer(os.Stdout)
	if err := f.Start(ctx); err != nil {
		if !errors.Is(err, flow.ErrClosed) {
			fmt.Fprintln(os.Stderr, err)
		}
		return
	}
	renderer.Render(f.Epoch(), f.Transcript())
	fmt.Println(usage)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case l, ok := <-lines:
			if !ok {
				fmt.Println()
				return
			}
			line = strings.TrimSpace(l)
		}

		err := handleLine(ctx, f, line)
		if errors.Is(err, errQuit) || errors.Is(err, flow.ErrClosed) {
			return
		}
		if err != nil {
			fmt.Println(err.Error())
		}
		renderer.Render(f.Epoch(), f.Transcript())
	}
}

var errQuit = errors.New("quit")

func handleLine(ctx context.Context, f *flow.Flow, line string) error {
	switch strings.ToLower(line) {
	case "":
		return nil
	case "/quit", "/exit":
		return errQuit
	case "/help":
		fmt.Println(usage)
		return nil
	case "/credits":
		err := f.RequestCredits(ctx)
		if errors.Is(err, flow.ErrCreditRequestUnavailable) {
			return errors.New("credits can be requested after an insufficient-credits error")
		}
		return err
	case "/reset":
		if f.State() != flow.StatePostItinerary {
			return errors.New(`/reset is available once an itinerary has been offered; answer the current question first`)
		}
		return f.Submit(ctx, flow.OptionModify)
	}

	err := f.Submit(ctx, line)
	if errors.Is(err, flow.ErrBusy) {
		return errors.New("still working on the previous request, please wait")
	}
	return err
}

func showProgress(state flow.State) {
	switch state {
	case flow.StateGenerating:
		fmt.Println("... generating your itinerary")
	case flow.StateLoadingQuestions:
		fmt.Println("... loading questions")
	}
}

// resolvePath 는 상대 경로를 config.yaml 이 있는 디렉터리 기준으로 바꾼다.
func resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if base := config.GetBasePath(); base != "" {
		return filepath.Join(base, p)
	}
	return p
}
