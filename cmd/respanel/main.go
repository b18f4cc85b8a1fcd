package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rflorenc/cloud-resource-workbench/internal/cloudclient"
	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
	"github.com/rflorenc/cloud-resource-workbench/internal/ui/panel"
)

// secretFlags collects repeated --secret label=id values.
type secretFlags map[string]string

func (s secretFlags) String() string {
	parts := make([]string, 0, len(s))
	for k, v := range s {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (s secretFlags) Set(v string) error {
	label, id, ok := strings.Cut(v, "=")
	if !ok || label == "" {
		return fmt.Errorf("expected label=id, got %q", v)
	}
	s[label] = id
	return nil
}

func main() {
	secrets := secretFlags{}
	server := flag.String("server", "http://localhost:8080", "Workbench API base URL")
	vendor := flag.String("vendor", "", "Cloud vendor of the secrets")
	user := flag.String("user", os.Getenv("USER"), "Operator name sent with requests")
	once := flag.Bool("once", false, "Print the table after loading and exit")
	flag.Var(secrets, "secret", "Secret as label=id (repeatable)")
	flag.Parse()

	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			log.Fatalf("failed to log to file: %v", err)
		}
		defer f.Close()
	}

	client := cloudclient.New(*server, cloudclient.WithUser(*user))
	props := panel.Props{SecretIDs: secrets, Vendor: enumor.Vendor(*vendor)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *once {
		m := panel.New(client, props, panel.WithContext(ctx), panel.WithExitOnLoad())
		program := tea.NewProgram(m, tea.WithInput(nil), tea.WithOutput(os.Stderr))
		if _, err := program.Run(); err != nil {
			log.Fatalf("failed to run program: %v", err)
		}
		fmt.Print(m.View())
		if m.Err() != nil {
			os.Exit(1)
		}
		return
	}

	program := tea.NewProgram(
		panel.New(client, props, panel.WithContext(ctx)),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		log.Fatalf("failed to run program: %v", err)
	}
}
