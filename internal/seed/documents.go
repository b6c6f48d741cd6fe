package seed

import (
	"context"
	"fmt"
	"time"

	"wayfarer/internal/catalog"
	"wayfarer/internal/utils"
	"wayfarer/pkg/types"
)

type seedDocument struct {
	Name    string
	Type    string
	Date    string
	Content map[string]string
}

var seedDocuments = []seedDocument{
	{
		Name: "Flight Ticket - NYC to LON",
		Type: catalog.TypeFlight,
		Date: "2024-01-15",
		Content: map[string]string{
			"airline": "Delta",
			"from":    "JFK",
			"to":      "LHR",
			"date":    "2024-01-15",
			"seat":    "23A",
		},
	},
	{
		Name: "Hotel Booking - Grand Plaza",
		Type: catalog.TypeHotel,
		Date: "2024-01-20",
		Content: map[string]string{
			"property": "Grand Plaza",
			"location": "London",
			"checkin":  "2024-01-15",
			"checkout": "2024-01-22",
		},
	},
	{
		Name: "Train Ticket - Eurostar",
		Type: catalog.TypeTrain,
		Date: "2024-01-25",
		Content: map[string]string{
			"from": "London St Pancras",
			"to":   "Paris Gare du Nord",
			"date": "2024-01-25",
			"seat": "61",
		},
	},
	{
		Name: "Driver's License",
		Type: catalog.TypeID,
		Date: "2024-02-01",
		Content: map[string]string{
			"number":  "D123-4567-8901",
			"issued":  "2020-02-01",
			"expires": "2028-02-01",
		},
	},
}

// SeedDocuments fills an empty catalog backend with the starter records.
// A backend that already holds records is left alone.
func SeedDocuments(ctx context.Context, backend catalog.Backend) ([]*types.DocumentRecord, error) {
	existing, err := backend.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing documents: %w", err)
	}
	if len(existing) > 0 {
		return nil, nil
	}

	seeded := make([]*types.DocumentRecord, 0, len(seedDocuments))
	for _, doc := range seedDocuments {
		createdDate, err := time.ParseInLocation("2006-01-02", doc.Date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("failed to parse seed date %q: %w", doc.Date, err)
		}

		record := &types.DocumentRecord{
			ID:          utils.NanoID(),
			Name:        doc.Name,
			Type:        doc.Type,
			CreatedDate: createdDate,
			InputMode:   types.InputModeManual,
			Content:     doc.Content,
		}

		if err := backend.Persist(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to seed document %q: %w", doc.Name, err)
		}
		seeded = append(seeded, record)
	}

	return seeded, nil
}
