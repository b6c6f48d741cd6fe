package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"wayfarer/internal/catalog"
	"wayfarer/internal/exchange"
	"wayfarer/internal/weather"
	"wayfarer/pkg/types"
)

type emergencyContact struct {
	Label  string
	Number string
	Icon   string
}

// emergencyContacts match the travel helpline card on the home screen.
var emergencyContacts = []emergencyContact{
	{Label: "Police", Number: "100", Icon: "shield"},
	{Label: "Ambulance", Number: "102", Icon: "medkit"},
	{Label: "Fire", Number: "101", Icon: "flame"},
	{Label: "Embassy", Number: "0361-2737554", Icon: "business"},
}

type converterData struct {
	Available  bool
	Currencies []exchange.Currency
	Amount     string
	From       string
	To         string
	Result     string
	Error      string
}

type homePageData struct {
	types.BasePageData
	Notice       string
	Error        string
	City         string
	Weather      *weather.Report
	WeatherError string
	Converter    converterData
	Emergency    []emergencyContact
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	data := &homePageData{
		BasePageData: types.BasePageData{Title: "Wayfarer"},
		Notice:       r.URL.Query().Get("notice"),
		City:         s.config.DefaultCity,
		Emergency:    emergencyContacts,
	}

	if city := r.URL.Query().Get("city"); city != "" {
		data.City = city
	}

	if s.weather != nil {
		report, err := s.weather.CurrentByCity(r.Context(), data.City)
		if err != nil {
			s.logger.WithError(err).WithField("city", data.City).Warn("weather lookup failed")
			data.WeatherError = "Weather is unavailable right now"
		} else {
			data.Weather = report
		}
	}

	data.Converter = s.convertCurrency(r)

	s.renderTemplate(w, r, "page.home", data)
}

// convertCurrency handles the home screen converter card. All conversions go
// through the USD-based rate table.
func (s *Service) convertCurrency(r *http.Request) converterData {
	conv := converterData{
		Available:  s.exchange != nil,
		Currencies: exchange.Currencies,
		Amount:     r.URL.Query().Get("amount"),
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
	}
	if conv.From == "" {
		conv.From = "USD"
	}
	if conv.To == "" {
		conv.To = "INR"
	}
	if !conv.Available || conv.Amount == "" {
		return conv
	}

	amount, err := strconv.ParseFloat(conv.Amount, 64)
	if err != nil || amount < 0 {
		conv.Error = "Enter a valid amount"
		return conv
	}

	rates, err := s.exchange.LatestUSD(r.Context())
	if err != nil {
		s.logger.WithError(err).Warn("exchange rate lookup failed")
		conv.Error = "Rates are unavailable right now"
		return conv
	}

	result, err := rates.Convert(amount, conv.From, conv.To)
	if err != nil {
		conv.Error = "Unsupported currency"
		return conv
	}

	conv.Result = fmt.Sprintf("%.2f", result)
	return conv
}

type searchPageData struct {
	types.BasePageData
	Query   string
	Results []catalog.Preview
}

// handleSearch filters the user's saved documents by a case-insensitive
// match on name or type label.
func (s *Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.internalServerError(w, err, "missing user context")
		return
	}

	data := &searchPageData{
		BasePageData: types.BasePageData{Title: "Search"},
		Query:        strings.TrimSpace(r.URL.Query().Get("q")),
	}

	if data.Query != "" {
		cat, err := s.catalogFor(r.Context(), userID)
		if err != nil {
			s.internalServerError(w, err, "failed to load catalog")
			return
		}

		needle := strings.ToLower(data.Query)
		for _, record := range cat.List() {
			label := catalog.SchemaFor(record.Type).Label
			if strings.Contains(strings.ToLower(record.Name), needle) ||
				strings.Contains(strings.ToLower(label), needle) {
				data.Results = append(data.Results, catalog.Project(record))
			}
		}
	}

	s.renderTemplate(w, r, "page.search", data)
}

type profilePageData struct {
	types.BasePageData
	User   *types.User
	Notice string
	Error  string
}

func (s *Service) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.internalServerError(w, err, "missing user context")
		return
	}

	user, err := s.users.User(r.Context(), userID)
	if err != nil {
		s.internalServerError(w, err, "failed to load profile")
		return
	}

	s.renderTemplate(w, r, "page.profile", &profilePageData{
		BasePageData: types.BasePageData{Title: "Profile"},
		User:         user,
		Notice:       r.URL.Query().Get("notice"),
	})
}
