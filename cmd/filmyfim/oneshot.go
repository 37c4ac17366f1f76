package main

import (
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/filmyfim/filmyfim/internal/models"
)

func newRecommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "recommend <title>",
		Short:   "Print recommendations for a movie title as JSON",
		Example: `  filmyfim recommend "Inception"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			movies, err := a.services.Recommender.Recommend(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), models.RecommendResponse{Recommendations: movies})
		},
	}
}

func newFeaturedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "Print a featured-movies sample as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			movies, err := a.services.Featured.Featured(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), models.FeaturedResponse{Movies: movies})
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
