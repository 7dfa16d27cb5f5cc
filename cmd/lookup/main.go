// Command lookup checks addresses against the geocoder from the terminal.
//
//	lookup -address "Main Street 42, 10115 Berlin"
//	printf 'Main Street 42\nDomgasse 5\n' | lookup
//
// Each line read from stdin replaces the current address and starts a new
// search; a search still running when the next line arrives is dropped.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dukerupert/brochure/internal"
	"github.com/dukerupert/brochure/internal/geocode"
	"github.com/dukerupert/brochure/internal/requestinfo"
	"github.com/dukerupert/brochure/internal/service"
)

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	addr := fs.String("address", "", "address to look up; reads one address per line from stdin when empty")
	endpoint := fs.String("endpoint", geocode.DefaultEndpoint, "Nominatim search endpoint")
	userAgent := fs.String("user-agent", "brochure-cli/1.0", "User-Agent sent to the geocoder")
	timeout := fs.Duration("timeout", 10*time.Second, "geocoder request timeout")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := internal.NewLogger(os.Stderr, "dev", *logLevel)

	geocoder, err := geocode.NewNominatimClient(geocode.NominatimConfig{
		Endpoint:  *endpoint,
		UserAgent: *userAgent,
		Timeout:   *timeout,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	svc, err := service.NewLookupService(geocoder, nil)
	if err != nil {
		return err
	}

	form := requestinfo.New(svc, *addr, logger)
	defer form.Close()

	form.Subscribe(func(res requestinfo.Result) {
		fmt.Fprintf(stdout, "%s\t%s\n", res.Query, res.Status)
	})

	if *addr != "" {
		form.Search(ctx)
		form.Wait()
		return nil
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		form.SetAddress(line)
		form.Search(ctx)
	}
	form.Wait()

	return scanner.Err()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
