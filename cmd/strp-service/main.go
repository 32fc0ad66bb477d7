package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/peterbourgon/ff/v3"

	strp "github.com/HammadMal/STRP-1"
	"github.com/HammadMal/STRP-1/internal/grid"
	"github.com/HammadMal/STRP-1/internal/identity"
	"github.com/HammadMal/STRP-1/internal/locate"
)

func main() {

	fs := flag.NewFlagSet("strp-service", flag.ExitOnError)
	var (
		_             = fs.String("config", "", "config file (optional), json format.")
		serviceName   = fs.String("name", "", "name for this outcome service instance")
		serviceID     = fs.String("id", "", "id for this outcome service instance, leave blank to auto-generate a unique id")
		serviceHost   = fs.String("host", "localhost", "name/address of host for this service")
		servicePort   = fs.Int("port", 0, "port to run service on, if not specified will assign an available port automatically")
		emailDomain   = fs.String("domain", identity.DefaultDomain, "mail domain appended to canonical student ids")
		fallbackRow   = fs.Int("anchor-fallback-row", locate.NoFallback, "row to treat as the module row when no Modules anchor is found, -1 to reject such sheets")
		shortRowLimit = fs.Int("short-row-limit", grid.DefaultShortRowLimit, "rows with this many characters or fewer are dropped while cleaning")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithEnvVarPrefix("STRP_SRVC"),
	); err != nil {
		fmt.Printf("\nCannot read strp-service configuration:\n%s\n\n", err)
		os.Exit(2)
	}

	opts := []strp.Option{
		strp.Name(*serviceName),
		strp.ID(*serviceID),
		strp.Host(*serviceHost),
		strp.Port(*servicePort),
		strp.EmailDomain(*emailDomain),
		strp.FallbackAnchorRow(*fallbackRow),
		strp.ShortRowLimit(*shortRowLimit),
	}

	srvc, err := strp.New(opts...)
	if err != nil {
		fmt.Printf("\nCannot create strp-service:\n%s\n\n", err)
		os.Exit(1)
	}

	srvc.PrintConfig()

	// signal handler for shutdown
	closed := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		fmt.Println("\nstrp-service shutting down")
		srvc.Shutdown()
		fmt.Println("strp-service closed")
		close(closed)
	}()

	srvc.Start()

	// block until shutdown by sig-handler
	<-closed

}
