package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/webhook"
)

// Delivery is one webhook POST to send
type Delivery struct {
	TxRef  string
	UserID string
	Amount decimal.Decimal
	Body   []byte
}

// Ack mirrors the engine's webhook acknowledgement
type Ack struct {
	Status  string `json:"status"`
	Outcome string `json:"outcome"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	TxRef        string
	Outcome      string
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests     int
	FailedRequests    int
	TotalTime         time.Duration
	ResponseTimes     []time.Duration
	OutcomeCounts     map[string]int
	AppliedPerRef     map[string]int
	ErrorCounts       map[string]int
	TotalResponseTime time.Duration
	Lock              sync.Mutex
}

func main() {
	concurrency := flag.Int("c", 8, "Number of concurrent goroutines")
	references := flag.Int("n", 50, "Number of distinct transaction references")
	duplicates := flag.Int("d", 3, "Deliveries per reference, simulating gateway retries")
	userIDsStr := flag.String("u", "U1,U2,U3", "Comma-separated list of user IDs to distribute deposits across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	secret := flag.String("secret", "", "Webhook shared secret; empty sends unsigned requests")
	header := flag.String("header", "verif-hash", "Signature header name")
	delayMs := flag.Int("delay", 0, "Delay between requests in milliseconds")
	flag.Parse()

	var userIDs []string
	for _, id := range strings.Split(*userIDsStr, ",") {
		if id = strings.TrimSpace(id); id != "" {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) == 0 {
		userIDs = []string{"U1"}
	}

	client := &http.Client{Timeout: 10 * time.Second}
	before := balances(client, *baseURL, userIDs)

	verifier := webhook.NewSignatureVerifier(*secret)
	deliveries, expected := buildDeliveries(*references, *duplicates, userIDs)

	fmt.Printf("Replaying %d references x %d deliveries across users %v\n", *references, *duplicates, userIDs)
	fmt.Printf("Concurrency: %d goroutines, signed: %t\n", *concurrency, *secret != "")

	stats := &TestStats{
		TotalRequests: len(deliveries),
		ResponseTimes: make([]time.Duration, 0, len(deliveries)),
		OutcomeCounts: make(map[string]int),
		AppliedPerRef: make(map[string]int),
		ErrorCounts:   make(map[string]int),
	}

	jobs := make(chan Delivery, len(deliveries))
	for _, d := range deliveries {
		jobs <- d
	}
	close(jobs)

	startTime := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *baseURL, *header, verifier, *secret != "", *delayMs, jobs, stats)
		}()
	}
	wg.Wait()
	stats.TotalTime = time.Since(startTime)

	after := balances(client, *baseURL, userIDs)
	printResults(stats, *references, userIDs, before, after, expected)
}

// buildDeliveries creates duplicates of every deposit, alternating payload shapes, shuffled
func buildDeliveries(references, duplicates int, userIDs []string) ([]Delivery, map[string]decimal.Decimal) {
	expected := make(map[string]decimal.Decimal)
	var out []Delivery
	run := uuid.NewString()[:8]

	for i := 0; i < references; i++ {
		userID := userIDs[rand.Intn(len(userIDs))]
		amount := decimal.NewFromInt(int64(100 + rand.Intn(900)))
		txRef := fmt.Sprintf("replay-%s-%d", run, i)
		expected[userID] = expected[userID].Add(amount)

		for j := 0; j < duplicates; j++ {
			out = append(out, Delivery{TxRef: txRef, UserID: userID, Amount: amount, Body: payload(i+j, txRef, userID, amount)})
		}
	}

	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, expected
}

func payload(variant int, txRef, userID string, amount decimal.Decimal) []byte {
	routing := map[string]any{"userId": userID, "transactionType": "Deposit"}
	var body map[string]any
	if variant%2 == 0 {
		body = map[string]any{
			"tx_ref": txRef, "status": "successful", "amount": amount,
			"meta": routing,
		}
	} else {
		body = map[string]any{
			"event": "charge.completed",
			"data": map[string]any{
				"reference": txRef, "status": "success", "amount": amount.String(),
				"payment_link": routing,
			},
		}
	}
	raw, _ := json.Marshal(body)
	return raw
}

func worker(client *http.Client, baseURL, header string, verifier *webhook.SignatureVerifier, sign bool,
	delayMs int, jobs <-chan Delivery, stats *TestStats) {

	for d := range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		req, err := http.NewRequest(http.MethodPost, baseURL+"/webhooks/gateway", bytes.NewReader(d.Body))
		if err != nil {
			record(stats, TestResult{TxRef: d.TxRef, Error: err})
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		if sign {
			req.Header.Set(header, verifier.Sign(d.Body))
		}

		start := time.Now()
		resp, err := client.Do(req)
		result := TestResult{TxRef: d.TxRef, ResponseTime: time.Since(start)}
		if err != nil {
			result.Error = err
			record(stats, result)
			continue
		}

		result.StatusCode = resp.StatusCode
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		var ack Ack
		if resp.StatusCode != http.StatusOK {
			result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
		} else if err := json.Unmarshal(body, &ack); err != nil {
			result.Error = fmt.Errorf("decode ack: %w", err)
		} else {
			result.Outcome = ack.Outcome
		}
		record(stats, result)
	}
}

func record(stats *TestStats, r TestResult) {
	stats.Lock.Lock()
	defer stats.Lock.Unlock()

	stats.ResponseTimes = append(stats.ResponseTimes, r.ResponseTime)
	stats.TotalResponseTime += r.ResponseTime
	if r.Error != nil {
		stats.FailedRequests++
		stats.ErrorCounts[r.Error.Error()]++
		return
	}
	stats.OutcomeCounts[r.Outcome]++
	if r.Outcome == "applied" {
		stats.AppliedPerRef[r.TxRef]++
	}
}

func balances(client *http.Client, baseURL string, userIDs []string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(userIDs))
	for _, id := range userIDs {
		resp, err := client.Get(fmt.Sprintf("%s/users/%s/balance", baseURL, id))
		if err != nil {
			continue
		}
		var b struct {
			Balance string `json:"balance"`
		}
		if resp.StatusCode == http.StatusOK && json.NewDecoder(resp.Body).Decode(&b) == nil {
			out[id], _ = decimal.NewFromString(b.Balance)
		}
		resp.Body.Close()
	}
	return out
}

func printResults(stats *TestStats, references int, userIDs []string, before, after, expected map[string]decimal.Decimal) {
	sorted := append([]time.Duration(nil), stats.ResponseTimes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	percentile := func(p int) time.Duration {
		if len(sorted) == 0 {
			return 0
		}
		return sorted[len(sorted)*p/100]
	}
	var avg time.Duration
	if len(sorted) > 0 {
		avg = stats.TotalResponseTime / time.Duration(len(sorted))
	}

	fmt.Println("\n================= REPLAY RESULTS =================")
	fmt.Printf("Total Requests:  %d\n", stats.TotalRequests)
	fmt.Printf("Failed Requests: %d\n", stats.FailedRequests)
	fmt.Printf("Total Time:      %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:      %.2f req/s\n", float64(stats.TotalRequests)/stats.TotalTime.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average: %v  P50: %v  P90: %v  P99: %v\n", avg, percentile(50), percentile(90), percentile(99))

	fmt.Println("\n----------------- OUTCOMES -----------------")
	for outcome, count := range stats.OutcomeCounts {
		fmt.Printf("%-16s %d\n", outcome, count)
	}
	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERRORS -----------------")
		for msg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", msg, count)
		}
	}

	fmt.Println("\n----------------- BALANCES -----------------")
	balancesOK := true
	for _, id := range userIDs {
		delta := after[id].Sub(before[id])
		ok := delta.Equal(expected[id])
		balancesOK = balancesOK && ok
		fmt.Printf("%-8s delta %s, expected %s\n", id, delta.StringFixed(2), expected[id].StringFixed(2))
	}

	doubleApplied := 0
	for _, n := range stats.AppliedPerRef {
		if n > 1 {
			doubleApplied++
		}
	}

	fmt.Println("\n================= CONCLUSION =================")
	if doubleApplied == 0 && len(stats.AppliedPerRef) == references && balancesOK && stats.FailedRequests == 0 {
		fmt.Println("✅ Every reference was applied exactly once")
	} else {
		fmt.Printf("❌ applied refs %d/%d, applied more than once %d, balances match %t\n",
			len(stats.AppliedPerRef), references, doubleApplied, balancesOK)
	}
	fmt.Println("================================================")
}
