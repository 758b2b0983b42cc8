package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"strings"

	"github.com/adrianliechti/wingman-diffusion/pkg/client"
	"github.com/adrianliechti/wingman-diffusion/pkg/markdown"
	"github.com/adrianliechti/wingman-diffusion/pkg/plugin"

	"github.com/google/uuid"
)

type renderFunc func(ctx context.Context, prompt string) (string, error)

func main() {
	tokenFlag := flag.String("token", os.Getenv("STABILITY_API_KEY"), "stability api key")
	widthFlag := flag.String("width", "", "image width")
	heightFlag := flag.String("height", "", "image height")

	urlFlag := flag.String("url", "", "server url (renders through a wingman-diffusion server)")
	modelFlag := flag.String("model", "", "model id (server only)")

	saveFlag := flag.Bool("save", false, "save generated images to the current directory")

	flag.Parse()

	ctx := context.Background()

	render := func(ctx context.Context, prompt string) (string, error) {
		settings := plugin.Settings{
			APIKey: *tokenFlag,

			Width:  plugin.Dimension(*widthFlag),
			Height: plugin.Dimension(*heightFlag),
		}

		return plugin.Generate(ctx, prompt, settings)
	}

	if *urlFlag != "" {
		c := client.New(*urlFlag)

		render = func(ctx context.Context, prompt string) (string, error) {
			return c.Renderings.New(ctx, client.RenderingRequest{
				Model:  *modelFlag,
				Prompt: prompt,

				Width:  *widthFlag,
				Height: *heightFlag,
			})
		}
	}

	if prompt := strings.Join(flag.Args(), " "); prompt != "" {
		if err := generate(ctx, os.Stdout, render, prompt, *saveFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		return
	}

	loop(ctx, render, *saveFlag)
}

func loop(ctx context.Context, render renderFunc, save bool) {
	reader := bufio.NewReader(os.Stdin)
	output := os.Stdout

LOOP:
	for {
		output.WriteString(">>> ")
		input, err := reader.ReadString('\n')

		if err != nil {
			return
		}

		input = strings.TrimSpace(input)

		if input == "" {
			continue LOOP
		}

		if err := generate(ctx, output, render, input, save); err != nil {
			output.WriteString(err.Error() + "\n")
			continue LOOP
		}

		output.WriteString("\n")
	}
}

func generate(ctx context.Context, w io.Writer, render renderFunc, prompt string, save bool) error {
	result, err := render(ctx, prompt)

	if err != nil {
		return err
	}

	if !save {
		fmt.Fprintln(w, result)
		return nil
	}

	for _, url := range markdown.ImageURLs(result) {
		contentType, data, err := markdown.DecodeDataURL(url)

		if err != nil {
			return err
		}

		name := uuid.New().String()

		if ext, _ := mime.ExtensionsByType(contentType); len(ext) > 0 {
			name += ext[0]
		}

		if err := os.WriteFile(name, data, 0600); err != nil {
			return err
		}

		fmt.Fprintln(w, "Saved: "+name)
	}

	return nil
}
