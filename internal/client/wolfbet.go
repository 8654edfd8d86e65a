package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wolfdice/internal/model"
)

// DefaultBaseURL is the production WolfBet API endpoint.
const DefaultBaseURL = "https://wolfbet.com/api/v1"

// WolfBet submits dice wagers over the WolfBet REST API.
type WolfBet struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewWolfBet creates a client with optional proxy support.
func NewWolfBet(baseURL, token, proxyURL string) *WolfBet {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &WolfBet{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout:   20 * time.Second,
			Transport: transport,
		},
	}
}

// apiNumber decodes numeric fields the API returns either quoted or bare.
type apiNumber float64

func (n *apiNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", s, err)
	}
	*n = apiNumber(v)
	return nil
}

type apiBet struct {
	State       string    `json:"state"`
	Profit      apiNumber `json:"profit"`
	Amount      apiNumber `json:"amount"`
	ResultValue apiNumber `json:"result_value"`
}

type betResponse struct {
	Bet *apiBet `json:"bet"`
}

// PlaceBet submits one dice wager and parses the outcome. Any transport
// error, non-2xx status or payload without a bet object is returned as
// an error; the caller treats all of them as retry-worthy.
func (w *WolfBet) PlaceBet(ctx context.Context, req model.BetRequest) (*model.BetResult, error) {
	payload := map[string]string{
		"currency":   req.Currency,
		"game":       "dice",
		"amount":     strconv.FormatFloat(req.Amount, 'f', 8, 64),
		"rule":       string(req.Rule),
		"bet_value":  strconv.FormatFloat(req.Threshold, 'f', 2, 64),
		"multiplier": strconv.FormatFloat(req.Multiplier, 'f', 4, 64),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal bet payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, w.BaseURL+"/bet/place", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	w.setHeaders(httpReq)

	resp, err := w.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("place bet: %w", err)
	}
	defer resp.Body.Close()

	rl := model.RateLimit{
		Limit:     resp.Header.Get("x-ratelimit-limit"),
		Remaining: resp.Header.Get("x-ratelimit-remaining"),
	}
	if rl.Remaining != "" {
		log.Printf("[INFO] rate limit: %s/%s remaining", rl.Remaining, rl.Limit)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("place bet: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var decoded betResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode bet response: %w", err)
	}
	if decoded.Bet == nil {
		return nil, fmt.Errorf("bet response missing bet payload")
	}

	outcome := model.OutcomeLose
	if decoded.Bet.State == "win" {
		outcome = model.OutcomeWin
	}
	charged := float64(decoded.Bet.Amount)
	if charged == 0 {
		charged = req.Amount
	}
	return &model.BetResult{
		Outcome:       outcome,
		Profit:        float64(decoded.Bet.Profit),
		AmountCharged: charged,
		ResultValue:   float64(decoded.Bet.ResultValue),
		RateLimit:     rl,
	}, nil
}

type balancesResponse struct {
	Balances []struct {
		Currency string    `json:"currency"`
		Amount   apiNumber `json:"amount"`
	} `json:"balances"`
}

// Balance returns the account balance for a currency. Consulted once at
// session start for the baseline report; it never gates betting.
func (w *WolfBet) Balance(ctx context.Context, currency string) (float64, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, w.BaseURL+"/user/balances", nil)
	if err != nil {
		return 0, err
	}
	w.setHeaders(httpReq)

	resp, err := w.Client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("fetch balances: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch balances: status %d", resp.StatusCode)
	}

	var decoded balancesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode balances: %w", err)
	}
	for _, b := range decoded.Balances {
		if strings.EqualFold(b.Currency, currency) {
			return float64(b.Amount), nil
		}
	}
	return 0, fmt.Errorf("no balance for currency %q", currency)
}

func (w *WolfBet) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+w.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
}
