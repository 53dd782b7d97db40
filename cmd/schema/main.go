// Command schema writes a JSON Schema describing every websocket payload.
//
//	schema -out docs/protocol.schema.json
//	schema -out -        # print to stdout
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"coinrush/protocol"
)

// messages lists each event name with the payload it carries.
type messages struct {
	Init                 protocol.Init                 `json:"init" jsonschema:"description=Server to joining client: own player plus everyone else and every collectible"`
	PlayerJoined         protocol.Player               `json:"playerJoined" jsonschema:"description=Server to everyone else when a player connects"`
	Move                 protocol.Move                 `json:"move" jsonschema:"description=Client intent: direction up/down/left/right and a speed"`
	PlayerMoved          protocol.Player               `json:"playerMoved" jsonschema:"description=Server to all after any move"`
	CollectibleCollected protocol.CollectibleCollected `json:"collectibleCollected" jsonschema:"description=Server to all when a move picks something up"`
	NewCollectible       protocol.Collectible          `json:"newCollectible" jsonschema:"description=Server to all when the floor is topped up"`
	PlayerLeft           protocol.PlayerLeft           `json:"playerLeft" jsonschema:"description=Server to all when a player disconnects"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "schema: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	out := fs.String("out", "", `where to write the schema ("-" for stdout)`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("-out is required")
	}

	data, err := json.MarshalIndent(buildSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	data = append(data, '\n')

	if *out == "-" {
		_, err = stdout.Write(data)
		return err
	}
	return replaceFile(*out, data)
}

func buildSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{AllowAdditionalProperties: true}
	s := r.Reflect(&messages{})
	s.Title = "coinrush websocket payloads"
	s.Description = fmt.Sprintf("Payload carried in the p field of each {t, p} envelope, keyed by event name. Binary frames use the %s subprotocol.", protocol.SubprotocolMsgpack)
	return s
}

// replaceFile writes data next to path and renames it into place so readers
// never see a half-written schema.
func replaceFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
