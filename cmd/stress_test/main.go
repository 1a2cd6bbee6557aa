package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL       = "http://localhost:8080"
	itemCount     = 5
	itemPrice     = 10.0
	totalRequests = 200
)

type itemResponse struct {
	ID string `json:"id"`
}

type cartResponse struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
	Items []struct {
		Quantity int `json:"quantity"`
	} `json:"items"`
}

func main() {
	client := &http.Client{Timeout: 5 * time.Second}

	// Seed catalog
	itemIDs := make([]string, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		id, err := createItem(client, fmt.Sprintf("stress-item-%d", i), itemPrice)
		if err != nil {
			log.Fatalf("failed to create item: %v", err)
		}
		itemIDs = append(itemIDs, id)
	}

	cartID, err := createCart(client)
	if err != nil {
		log.Fatalf("failed to create cart: %v", err)
	}

	// Counters
	var successCount atomic.Int32
	var failCount atomic.Int32

	// Spawn concurrent adds against a single cart
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			url := fmt.Sprintf("%s/cart/%s/add/%s", baseURL, cartID, itemIDs[n%itemCount])
			resp, err := client.Post(url, "application/json", nil)
			if err == nil && resp.StatusCode == http.StatusOK {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
			if err == nil {
				resp.Body.Close()
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	// Results
	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Printf("Throughput:       %.0f req/s\n", float64(totalRequests)/elapsed.Seconds())
	fmt.Println("==========================================")

	// Verify no add was lost: cart totals must match the success count
	cart, err := getCart(client, cartID)
	if err != nil {
		log.Fatalf("failed to get cart: %v", err)
	}

	quantity := 0
	for _, line := range cart.Items {
		quantity += line.Quantity
	}

	if quantity == int(success) {
		fmt.Printf("PASS: cart quantity %d matches %d successful adds\n", quantity, success)
	} else {
		fmt.Printf("FAIL: cart quantity %d, expected %d\n", quantity, success)
	}

	expectedPrice := float64(success) * itemPrice
	if cart.Price == expectedPrice {
		fmt.Printf("PASS: cart price %.2f matches expected %.2f\n", cart.Price, expectedPrice)
	} else {
		fmt.Printf("FAIL: cart price %.2f, expected %.2f\n", cart.Price, expectedPrice)
	}
}

func createItem(client *http.Client, name string, price float64) (string, error) {
	body, _ := json.Marshal(map[string]any{"name": name, "price": price})
	resp, err := client.Post(baseURL+"/item", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var item itemResponse
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return "", err
	}
	return item.ID, nil
}

func createCart(client *http.Client) (string, error) {
	resp, err := client.Post(baseURL+"/cart", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var cart cartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cart); err != nil {
		return "", err
	}
	return cart.ID, nil
}

func getCart(client *http.Client, id string) (*cartResponse, error) {
	resp, err := client.Get(baseURL + "/cart/" + id)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var cart cartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
