package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Skotchmaster/medistock/internal/events"
	"github.com/Skotchmaster/medistock/internal/repo"
	"github.com/Skotchmaster/medistock/internal/service"
	"github.com/Skotchmaster/medistock/pkg/config"
	"github.com/Skotchmaster/medistock/pkg/db"
	"github.com/Skotchmaster/medistock/pkg/logging"
)

const usage = `usage: medistockctl <command> [flags]

commands:
  migrate                              create or update the schema
  sweep                                cancel approved orders past their pickup window
  nearby -lat N -lng N [-radius KM] [-medicine NAME]
                                       list stores around a point, open or closed
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	config.LoadEnvFile(".env")
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx := logging.IntoContext(context.Background(), logging.New(cfg.LogLevel))
	if err := run(ctx, cfg, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func run(ctx context.Context, cfg config.Config, cmd string, args []string) error {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	gdb, err := db.Open(openCtx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		return err
	}
	defer db.Close(gdb)
	r := &repo.GormRepo{DB: gdb}

	switch cmd {
	case "migrate":
		if err := r.AutoMigrate(ctx); err != nil {
			return err
		}
		log.Println("schema up to date")
	case "sweep":
		var pub events.Publisher = events.Nop{}
		if len(cfg.KafkaBrokers) > 0 {
			producer := events.NewProducer(cfg.KafkaBrokers)
			defer producer.Close()
			pub = producer
		}
		n, err := sweep(ctx, r, pub, time.Now())
		if err != nil {
			return err
		}
		log.Printf("cancelled %d expired orders", n)
	case "nearby":
		return runNearby(ctx, os.Stdout, &service.StoreService{Repo: r, DefaultRadiusKm: cfg.DefaultRadiusKm}, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// sweep cancels elapsed approved orders and announces each one on pub.
func sweep(ctx context.Context, r *repo.GormRepo, pub events.Publisher, now time.Time) (int, error) {
	return (&service.OrderService{Repo: r, Events: pub}).CancelExpired(ctx, now)
}

func runNearby(ctx context.Context, w io.Writer, svc *service.StoreService, args []string) error {
	fs := flag.NewFlagSet("nearby", flag.ContinueOnError)
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	radius := fs.Float64("radius", 0, "search radius in km (default from DEFAULT_SEARCH_RADIUS_KM)")
	medicine := fs.String("medicine", "", "only list stores stocking this medicine")
	if err := fs.Parse(args); err != nil {
		return err
	}

	q := service.NearbyQuery{Latitude: *lat, Longitude: *lng, Medicine: *medicine}
	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		seen[f.Name] = true
		if f.Name == "radius" {
			q.RadiusKm = radius
		}
	})
	if !seen["lat"] || !seen["lng"] {
		return errors.New("nearby: -lat and -lng are required")
	}

	stores, err := svc.Nearby(ctx, q)
	if err != nil {
		return err
	}
	printStores(w, stores)
	return nil
}

func printStores(w io.Writer, stores []service.NearbyStore) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DISTANCE\tSTORE\tADDRESS\tMATCHES")
	for _, s := range stores {
		names := make([]string, 0, len(s.Medicines))
		for _, m := range s.Medicines {
			names = append(names, fmt.Sprintf("%s (%d)", m.Name, m.Quantity))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Distance, s.Name, s.Address, strings.Join(names, ", "))
	}
	tw.Flush()
}
