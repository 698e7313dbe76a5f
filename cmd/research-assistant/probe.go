package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/llm"
	"github.com/pdiddy/research-assistant/internal/probe"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check LLM backend connectivity",
	Long: `Probe reports which AI backends are usable: whether the local model
server answers and whether a cloud API key is configured. With --watch it
keeps probing on the configured interval until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetDuration("watch")

		cfg := buildConfig()
		gateway, err := newGateway(cfg)
		if err != nil {
			return err
		}

		if watch <= 0 {
			printStatus(gateway.Probe(context.Background()))
			return nil
		}

		monitor, err := probe.NewMonitor(gateway, cfg.Probe.Interval)
		if err != nil {
			return err
		}
		monitor.Start()
		defer monitor.Stop()

		deadline := time.Now().Add(watch)
		for time.Now().Before(deadline) {
			printStatus(monitor.Current())
			time.Sleep(cfg.Probe.Interval)
		}
		return nil
	},
}

func printStatus(s llm.Status) {
	yesNo := func(b bool) string {
		if b {
			return "ok"
		}
		return "unavailable"
	}
	fmt.Printf("local model server: %s\n", yesNo(s.Local))
	fmt.Printf("cloud API key:      %s\n", yesNo(s.Cloud))
	if !s.Usable() {
		fmt.Println("no AI service is usable: start the local server or add .secrets/gemini-api-key")
	}
}

func init() {
	probeCmd.Flags().Duration("watch", 0, "keep probing for this long (e.g. 1m)")

	rootCmd.AddCommand(probeCmd)
}
