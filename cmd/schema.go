// Package cmd implements the command-line interface for mprisync.
package cmd

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/mprisync/mprisync/events"
	"github.com/mprisync/mprisync/history"
	"github.com/mprisync/mprisync/progress"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// schemaTargets are the JSON outputs a schema can be generated for.
var schemaTargets = map[string]func() any{
	"events":   func() any { return &events.Event{} },
	"progress": func() any { return &progress.Snapshot{} },
	"players":  func() any { return []playerInfo{} },
	"history":  func() any { return []*history.SeenPlayer{} },
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd generates JSON schemas for the --json outputs.
var schemaCmd = &cobra.Command{
	Use:       "schema {events|progress|players|history}",
	Short:     "Generate the JSON schema of a command's --json output",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: lo.Keys(schemaTargets),
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Mapper = func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(events.Kind(0)) {
				return &jsonschema.Schema{
					Type: "string",
					Enum: lo.Map(events.Kinds(), func(k events.Kind, _ int) any { return k.String() }),
				}
			}
			return nil
		}

		schema := reflector.Reflect(schemaTargets[args[0]]())
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
	},
}
