package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rl1809/shop-api/internal/adapter/handler"
	"github.com/rl1809/shop-api/internal/adapter/storage"
	"github.com/rl1809/shop-api/internal/core/domain"
	"github.com/rl1809/shop-api/internal/core/service"
)

type testEnv struct {
	server *httptest.Server
	client *http.Client
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	items := storage.NewMemoryItemStore()
	carts := storage.NewMemoryCartStore()
	h := handler.NewHTTPHandler(
		service.NewCatalogService(items),
		service.NewCartService(carts, items),
		zap.NewNop(),
	)

	server := httptest.NewServer(h.Router())
	t.Cleanup(server.Close)

	return &testEnv{server: server, client: server.Client()}
}

func (e *testEnv) post(t *testing.T, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	resp, err := e.client.Post(e.server.URL+path, "application/json", reader)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return readBody(t, resp)
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()

	resp, err := e.client.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return readBody(t, resp)
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) (*http.Response, []byte) {
	t.Helper()
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, buf.Bytes()
}

func (e *testEnv) createItem(t *testing.T, name string, price float64) domain.Item {
	t.Helper()

	resp, body := e.post(t, "/item", map[string]any{"name": name, "price": price})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create item: expected 201, got %d: %s", resp.StatusCode, body)
	}

	var item domain.Item
	if err := json.Unmarshal(body, &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	return item
}

func (e *testEnv) createCart(t *testing.T) string {
	t.Helper()

	resp, body := e.post(t, "/cart", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create cart: expected 201, got %d: %s", resp.StatusCode, body)
	}

	var created map[string]string
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	return created["id"]
}

func TestIntegration_ItemLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	item := env.createItem(t, "hammer", 9.99)

	resp, body := env.get(t, "/item/"+item.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get item: expected 200, got %d", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodPut, "/item/"+item.ID, map[string]any{"name": "sledgehammer", "price": 19.99})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put item: expected 200, got %d", resp.StatusCode)
	}

	resp, body = env.do(t, http.MethodPatch, "/item/"+item.ID, map[string]any{"price": 15})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch item: expected 200, got %d", resp.StatusCode)
	}
	var patched domain.Item
	json.Unmarshal(body, &patched)
	if patched.Name != "sledgehammer" || patched.Price != 15 {
		t.Errorf("unexpected item after patch: %+v", patched)
	}

	resp, _ = env.do(t, http.MethodDelete, "/item/"+item.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete item: expected 200, got %d", resp.StatusCode)
	}

	resp, _ = env.get(t, "/item/"+item.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get deleted item: expected 404, got %d", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodPatch, "/item/"+item.ID, map[string]any{"price": 1})
	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("patch deleted item: expected 304, got %d", resp.StatusCode)
	}
}

func TestIntegration_CartScenario(t *testing.T) {
	env := setupTestEnv(t)

	a := env.createItem(t, "a", 10)
	b := env.createItem(t, "b", 20)
	cartID := env.createCart(t)

	for _, id := range []string{a.ID, a.ID, b.ID} {
		resp, body := env.post(t, fmt.Sprintf("/cart/%s/add/%s", cartID, id), nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add item: expected 200, got %d: %s", resp.StatusCode, body)
		}
	}

	resp, body := env.get(t, "/cart/"+cartID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get cart: expected 200, got %d", resp.StatusCode)
	}

	var view domain.CartView
	json.Unmarshal(body, &view)
	if view.Price != 40 {
		t.Errorf("expected price 40, got %v", view.Price)
	}
	if len(view.Items) != 2 || view.Items[0].Quantity != 2 || view.Items[1].Quantity != 1 {
		t.Errorf("unexpected lines: %+v", view.Items)
	}

	// Soft-delete b: the line stays, the price drops
	env.do(t, http.MethodDelete, "/item/"+b.ID, nil)

	_, body = env.get(t, "/cart/"+cartID)
	json.Unmarshal(body, &view)
	if view.Price != 20 {
		t.Errorf("expected price 20 after deletion, got %v", view.Price)
	}
	if len(view.Items) != 2 || view.Items[1].Available {
		t.Errorf("deleted item must stay as unavailable line: %+v", view.Items)
	}
}

func TestIntegration_ListingsAcrossStores(t *testing.T) {
	env := setupTestEnv(t)

	free := env.createItem(t, "free", 0)
	cheap := env.createItem(t, "cheap", 5)
	env.createItem(t, "pricey", 50)

	// zero min_price is a real bound and must not drop the free item
	resp, body := env.get(t, "/item?min_price=0")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list items: expected 200, got %d", resp.StatusCode)
	}
	var items []domain.Item
	json.Unmarshal(body, &items)
	if len(items) != 3 || items[0].ID != free.ID {
		t.Errorf("min_price=0 listing wrong: %+v", items)
	}

	_, body = env.get(t, "/item?max_price=5&offset=1")
	json.Unmarshal(body, &items)
	if len(items) != 1 || items[0].ID != cheap.ID {
		t.Errorf("filtered+paged listing wrong: %+v", items)
	}

	cartID := env.createCart(t)
	env.post(t, fmt.Sprintf("/cart/%s/add/%s", cartID, cheap.ID), nil)

	_, body = env.get(t, "/cart?min_price=1&max_price=10")
	var views []domain.CartView
	json.Unmarshal(body, &views)
	if len(views) != 1 || views[0].ID != cartID {
		t.Errorf("cart listing wrong: %+v", views)
	}
}

func TestIntegration_ConcurrentAdds(t *testing.T) {
	env := setupTestEnv(t)

	item := env.createItem(t, "hammer", 10)
	cartID := env.createCart(t)

	total := 50

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := env.client.Post(
				fmt.Sprintf("%s/cart/%s/add/%s", env.server.URL, cartID, item.ID),
				"application/json", nil,
			)
			if err == nil {
				if resp.StatusCode == http.StatusOK {
					successCount.Add(1)
				}
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != int32(total) {
		t.Fatalf("expected %d successful adds, got %d", total, successCount.Load())
	}

	_, body := env.get(t, "/cart/"+cartID)
	var view domain.CartView
	json.Unmarshal(body, &view)
	if len(view.Items) != 1 || view.Items[0].Quantity != total {
		t.Errorf("expected quantity %d, got %+v", total, view.Items)
	}
	if view.Price != float64(total)*10 {
		t.Errorf("expected price %v, got %v", float64(total)*10, view.Price)
	}
}
