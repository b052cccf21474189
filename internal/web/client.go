package web

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
)

//go:embed client/app.ts
var clientSource string

// clientScript compiles the embedded TypeScript client once, on first use.
type clientScript struct {
	once sync.Once
	js   []byte
	err  error
}

func (c *clientScript) get() ([]byte, error) {
	c.once.Do(func() {
		c.js, c.err = compileClient(clientSource)
	})
	return c.js, c.err
}

// compileClient strips types from TypeScript source and minifies it into a
// single browser script.
func compileClient(src string) ([]byte, error) {
	result := api.Transform(src, api.TransformOptions{
		Loader:            api.LoaderTS,
		Format:            api.FormatIIFE,
		Target:            api.ES2020,
		Platform:          api.PlatformBrowser,
		Sourcefile:        "app.ts",
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		LogLevel:          api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		var b strings.Builder
		for _, err := range result.Errors {
			if err.Location != nil {
				fmt.Fprintf(&b, "%s:%d:%d: ", err.Location.File, err.Location.Line, err.Location.Column)
			}
			b.WriteString(err.Text)
			b.WriteString("\n")
		}
		return nil, fmt.Errorf("esbuild errors:\n%s", b.String())
	}
	return result.Code, nil
}
