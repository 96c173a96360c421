package usecases

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/core/ports"
	"github.com/samirrijal/geowatch/internal/pkg/metrics"
)

// exportDateLayout is the spreadsheet-friendly date format used in CSV rows.
const exportDateLayout = "2006/01/02"

// csvHeader is the fixed column order of an archive export.
var csvHeader = []string{
	"ID",
	"Content",
	"Likes",
	"Retweets",
	"Replies",
	"Media Count",
	"Date",
	"Longitude",
	"Latitude",
	"Keyword Count",
	"Relatability Score",
	"Link",
}

// ExportService turns an archived query's complete tweet set into a CSV
// document. Unlike the page reads, export failures surface as errors.
type ExportService struct {
	gateway ports.CollectorGateway
	logger  *slog.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(gateway ports.CollectorGateway, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{gateway: gateway, logger: logger}
}

// Filename returns the download name for a query's export.
func Filename(q domain.ArchivedQuery) string {
	return q.Name + " - " + q.ID + ".csv"
}

// WriteCSV streams the full export of one archived query to w and returns
// the suggested filename.
func (s *ExportService) WriteCSV(ctx context.Context, id string, w io.Writer) (string, error) {
	q, err := s.gateway.ArchivedQuery(ctx, id)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", id, err)
	}

	// Limit 0 asks for the complete record set, not the page-sized slice.
	tweets, err := s.gateway.ArchivedTweets(ctx, id, 0)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", id, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return "", fmt.Errorf("export %s: %w", id, err)
	}
	for _, tw := range tweets {
		row := []string{
			tw.ID,
			tw.Content,
			strconv.Itoa(tw.Likes),
			strconv.Itoa(tw.Retweets),
			strconv.Itoa(tw.Replies),
			strconv.Itoa(len(tw.Media)),
			tw.CreatedAt.Format(exportDateLayout),
			strconv.FormatFloat(tw.Location.Longitude, 'f', -1, 64),
			strconv.FormatFloat(tw.Location.Latitude, 'f', -1, 64),
			strconv.Itoa(tw.KeywordCount),
			strconv.FormatFloat(tw.RelatabilityScore, 'f', -1, 64),
			domain.TweetURL(tw.ID),
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("export %s: %w", id, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("export %s: %w", id, err)
	}

	metrics.ExportRows.Add(float64(len(tweets)))
	s.logger.Info("archive exported", "query_id", id, "rows", len(tweets))
	return Filename(*q), nil
}
