// Command bagq loads a JSON, YAML, TOML or query-string document into a
// parameter bag and runs bag accessors against it.
//
//	bagq -f config.yaml get db.port --as int
//	echo '{"a":[1,2]}' | bagq keys --dot
//	bagq -f users.json first --where 'value.age > 30'
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
)

func main() {
	app := newApp()
	app.Reader = os.Stdin
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
