package system

import (
	"encoding/json"
	"fmt"

	"github.com/unscroll/unscroll/internal/cli"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" name:"db-path" help:"Show the store path."`
	Keys   DebugKeysCmd   `cmd:"" help:"List stored keys."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump the raw JSON value of a key."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path":   ctx.Store.GetConfigPath(),
		"source": string(ctx.Source),
	})
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		ctx.Println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Key to dump (e.g. access_control, day_progress)."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	var raw json.RawMessage
	ok, err := ctx.Store.Get(cmd.Key, &raw)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.Key, err)
	}
	if !ok {
		return fmt.Errorf("key not found: %s", cmd.Key)
	}
	return printJSON(ctx, raw)
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
