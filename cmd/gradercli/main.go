package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/gradelab/backend/gradestore"
	"github.com/gradelab/backend/grading"
)

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "", "path to the roster XLSX file")
	saveDir := flag.String("save-dir", ".essay_grades", "directory for the autosave file")
	restore := flag.Bool("restore", false, "restore previously saved progress for this roster")
	flag.Parse()

	if *file == "" {
		fmt.Println("Please provide the roster file using the -file flag.")
		os.Exit(1)
	}

	// keep slog quiet; the TUI owns the terminal
	logFile, err := os.OpenFile("gradercli.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		defer logFile.Close()
		slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))
	}

	store, err := gradestore.New(*saveDir)
	if err != nil {
		log.Fatal(err)
	}

	srvc := grading.NewGradingSrvc(store, slog.Default())
	if *restore {
		srvc.RequestRestore()
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal(err)
	}

	result, err := srvc.LoadDataset(content)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srvc.RunPeriodicAutosave(ctx, 30*time.Second)

	p := tea.NewProgram(initialModel(srvc, result.Message))
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}

	// one last save on the way out
	if _, err := srvc.Save(); err == nil {
		fmt.Println("进度已保存。")
	}
}
