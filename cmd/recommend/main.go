// Command recommend runs one recommendation pass against a catalog file and
// prints the ranked list. Useful for tuning weights without a server.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/voyago/voyago/internal/adapters/catalog"
	"github.com/voyago/voyago/internal/app"
	"github.com/voyago/voyago/internal/domain/model"
	"github.com/voyago/voyago/pkg/logger"
)

var (
	catalogFile string
	outputJSON  bool

	budget      string
	categories  []string
	radiusKm    float64
	lat         float64
	lng         float64
	hasLocation bool
	filterCat   string
	filterTier  string
	openNowOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank places from a catalog for a user profile",
	Long:  `Runs the filter, scoring, ranking and map projection pipeline once and prints the ordered recommendations.`,
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVarP(&catalogFile, "catalog", "c", "", "Catalog JSON file (default: built-in demo places)")
	rootCmd.Flags().BoolVar(&outputJSON, "json", false, "Output results as JSON")

	rootCmd.Flags().StringVarP(&budget, "budget", "b", "medium", "Profile budget tier: low, medium, high")
	rootCmd.Flags().StringSliceVar(&categories, "interests", nil, "Profile interest categories (comma separated)")
	rootCmd.Flags().Float64VarP(&radiusKm, "radius", "r", 10, "Search radius in km")
	rootCmd.Flags().Float64Var(&lat, "lat", 0, "Current latitude")
	rootCmd.Flags().Float64Var(&lng, "lng", 0, "Current longitude")

	rootCmd.Flags().StringVar(&filterCat, "category", "any", "Filter category")
	rootCmd.Flags().StringVar(&filterTier, "tier", "any", "Filter budget tier")
	rootCmd.Flags().BoolVar(&openNowOnly, "open-now", false, "Only places open right now")
}

func run(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	if err := logger.Init(); err != nil {
		return err
	}
	_ = logger.SetLevelString("warn")

	var places []model.Place
	if catalogFile != "" {
		var err error
		places, err = catalog.LoadFile(catalogFile)
		if err != nil {
			return err
		}
	}

	svc := app.New(app.WithPlaces(places))
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	cats := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, model.Category(strings.TrimSpace(c)))
	}
	profile := model.UserProfile{
		Budget:     model.Tier(budget),
		Categories: cats,
		RadiusKm:   radiusKm,
	}

	var loc *model.Location
	hasLocation = cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng")
	if hasLocation {
		loc = &model.Location{Coordinate: model.Coordinate{Lat: lat, Lng: lng}}
	}

	sel := model.FilterSelection{
		Category:    model.Category(filterCat),
		Budget:      model.Tier(filterTier),
		RadiusKm:    radiusKm,
		OpenNowOnly: openNowOnly,
	}

	recs, err := svc.Recommend(ctx, profile, loc, sel)
	if err != nil {
		return err
	}

	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Println("no places matched")
		return nil
	}
	for i, r := range recs {
		dist := "   ?   "
		if r.DistanceKm != nil {
			dist = fmt.Sprintf("%5.1fkm", *r.DistanceKm)
		}
		fmt.Printf("%2d. %-28s %.3f  %s  %s\n", i+1, r.Place.Name, r.Score, dist, r.Reason)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
