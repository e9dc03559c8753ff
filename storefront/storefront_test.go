package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	endpoints := Endpoints{
		Auth:   "https://auth.example.com",
		Users:  "https://users.example.com",
		Games:  "https://games.example.com",
		Frames: "https://frames.example.com",
		Market: "https://market.example.com",
	}
	client := NewClient(endpoints)

	if client.Endpoints() != endpoints {
		t.Errorf("expected endpoints %+v, got %+v", endpoints, client.Endpoints())
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, client.httpClient.Timeout)
	}
	if client.Auth == nil {
		t.Error("expected Auth service to be initialized")
	}
	if client.Users == nil {
		t.Error("expected Users service to be initialized")
	}
	if client.Games == nil {
		t.Error("expected Games service to be initialized")
	}
	if client.Frames == nil {
		t.Error("expected Frames service to be initialized")
	}
	if client.Market == nil {
		t.Error("expected Market service to be initialized")
	}
}

func TestNewClient_WithOptions(t *testing.T) {
	customClient := &http.Client{Timeout: 60 * time.Second}
	client := NewClient(Endpoints{}, WithHTTPClient(customClient))
	if client.httpClient != customClient {
		t.Error("expected custom HTTP client to be set")
	}

	client = NewClient(Endpoints{}, WithTimeout(5*time.Second))
	if client.httpClient.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", client.httpClient.Timeout)
	}
}

// newTestClient points every service endpoint at the given test server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Endpoints{
		Auth:   server.URL,
		Users:  server.URL,
		Games:  server.URL,
		Frames: server.URL,
		Market: server.URL,
	})
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
	return body
}

func TestAuthService_Login(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		body := decodeBody(t, r)
		if body["action"] != "login" {
			t.Errorf("expected action login, got %v", body["action"])
		}
		if body["email"] != "a@b.c" {
			t.Errorf("expected email a@b.c, got %v", body["email"])
		}
		if body["password"] != "secret" {
			t.Errorf("expected password to be sent")
		}
		if _, ok := body["username"]; ok {
			t.Error("login must not carry a username")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{
				"id": 7, "email": "a@b.c", "username": "neo",
				"display_name": "Neo", "balance": 500.0, "role": "user",
				"is_verified": true,
			},
		})
	})

	user, err := client.Auth.Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 || user.Username != "neo" || user.Balance != 500 {
		t.Errorf("unexpected user: %+v", user)
	}
	if !user.IsVerified {
		t.Error("expected verified user")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Неверный email или пароль"})
	})

	_, err := client.Auth.Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !apiErr.IsUnauthorized() {
		t.Errorf("expected unauthorized, got status %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Неверный email или пароль" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
}

func TestAuthService_Login_BannedAccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Данный аккаунт заблокирован Администрацией"})
	})

	_, err := client.Auth.Login(context.Background(), "a@b.c", "secret")
	var apiErr *Error
	if !errors.As(err, &apiErr) || !apiErr.IsForbidden() {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestAuthService_Register(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["action"] != "register" {
			t.Errorf("expected action register, got %v", body["action"])
		}
		if body["username"] != "neo" {
			t.Errorf("expected username neo, got %v", body["username"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": 8, "username": "neo", "role": "user"},
		})
	})

	user, err := client.Auth.Register(context.Background(), "a@b.c", "neo", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 8 {
		t.Errorf("expected id 8, got %d", user.ID)
	}
}

func TestUsersService_Get(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_id"); got != "42" {
			t.Errorf("expected user_id=42, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": 42, "username": "trin", "balance": 120.5, "hours_online": 3},
		})
	})

	user, err := client.Users.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Balance != 120.5 || user.HoursOnline != 3 {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestUsersService_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "tri" {
			t.Errorf("expected search=tri, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []map[string]interface{}{{"id": 42, "username": "trin"}},
		})
	})

	users, err := client.Users.Search(context.Background(), "tri")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].Username != "trin" {
		t.Errorf("unexpected users: %+v", users)
	}
}

func TestUsersService_UpdateProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		body := decodeBody(t, r)
		if body["action"] != "update_profile" {
			t.Errorf("expected action update_profile, got %v", body["action"])
		}
		if body["display_name"] != "Morpheus" {
			t.Errorf("expected display_name Morpheus, got %v", body["display_name"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": 1, "display_name": "Morpheus", "username": "morph"},
		})
	})

	user, err := client.Users.UpdateProfile(context.Background(), 1, UpdateProfileRequest{
		DisplayName: "Morpheus",
		Username:    "morph",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.DisplayName != "Morpheus" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestUsersService_AdminActions(t *testing.T) {
	tests := []struct {
		name       string
		call       func(*Client) error
		wantAction string
	}{
		{"verify", func(c *Client) error { return c.Users.SetVerified(context.Background(), 5, true) }, "admin_verify"},
		{"unverify", func(c *Client) error { return c.Users.SetVerified(context.Background(), 5, false) }, "admin_unverify"},
		{"ban", func(c *Client) error { return c.Users.SetBanned(context.Background(), 5, true) }, "admin_ban"},
		{"unban", func(c *Client) error { return c.Users.SetBanned(context.Background(), 5, false) }, "admin_unban"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAction string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				body := decodeBody(t, r)
				gotAction, _ = body["action"].(string)
				if body["user_id"] != float64(5) {
					t.Errorf("expected user_id 5, got %v", body["user_id"])
				}
				json.NewEncoder(w).Encode(map[string]bool{"success": true})
			})

			if err := tt.call(client); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotAction != tt.wantAction {
				t.Errorf("expected action %q, got %q", tt.wantAction, gotAction)
			}
		})
	}
}

func TestUsersService_SetBalance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["action"] != "update_balance" {
			t.Errorf("expected action update_balance, got %v", body["action"])
		}
		if body["balance"] != float64(250) {
			t.Errorf("expected balance 250, got %v", body["balance"])
		}
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})

	if err := client.Users.SetBalance(context.Background(), 5, 250); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGamesService_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "pending" {
			t.Errorf("expected status=pending, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"games": []map[string]interface{}{
				{"id": 1, "title": "Space Adventure", "price": 599.0, "status": "pending"},
			},
		})
	})

	games, err := client.Games.List(context.Background(), GameStatusPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 || games[0].Title != "Space Adventure" {
		t.Errorf("unexpected games: %+v", games)
	}
}

func TestGamesService_Publish(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		body := decodeBody(t, r)
		if body["title"] != "Puzzle Master" {
			t.Errorf("expected title, got %v", body["title"])
		}
		if body["price"] != float64(199) {
			t.Errorf("expected numeric price 199, got %v", body["price"])
		}
		if body["publisher_username"] != "neo" {
			t.Errorf("expected publisher_username neo, got %v", body["publisher_username"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"game_id": 11, "message": "Игра отправлена на модерацию",
		})
	})

	result, err := client.Games.Publish(context.Background(), PublishGameRequest{
		Title:             "Puzzle Master",
		Description:       "desc",
		Price:             199,
		PublisherUsername: "neo",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.GameID != 11 || result.Message == "" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestGamesService_Moderation(t *testing.T) {
	var gotBody map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody = decodeBody(t, r)
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})

	if err := client.Games.Approve(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["action"] != "approve" || gotBody["game_id"] != float64(3) {
		t.Errorf("unexpected approve body: %v", gotBody)
	}

	if err := client.Games.Reject(context.Background(), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["action"] != "reject" {
		t.Errorf("unexpected reject body: %v", gotBody)
	}

	if err := client.Games.SetFeatured(context.Background(), 5, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["action"] != "set_featured" || gotBody["is_featured"] != false {
		t.Errorf("unexpected set_featured body: %v", gotBody)
	}
}

func TestFramesService_CatalogAndOwned(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if userID := r.URL.Query().Get("user_id"); userID != "" {
			if userID != "7" {
				t.Errorf("expected user_id=7, got %q", userID)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"frames": []map[string]interface{}{
					{"id": 1, "name": "Gold", "price": 100.0, "is_active": true},
				},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"frames": []map[string]interface{}{
				{"id": 1, "name": "Gold", "price": 100.0},
				{"id": 2, "name": "Neon", "price": 150.0},
			},
		})
	})

	catalog, err := client.Frames.Catalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog) != 2 {
		t.Errorf("expected 2 catalog frames, got %d", len(catalog))
	}

	owned, err := client.Frames.Owned(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(owned) != 1 || !owned[0].IsActive {
		t.Errorf("unexpected owned frames: %+v", owned)
	}
}

func TestFramesService_BuyAndSetActive(t *testing.T) {
	var gotBody map[string]interface{}
	var gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody = decodeBody(t, r)
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})

	if err := client.Frames.Buy(context.Background(), 7, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPost || gotBody["action"] != "buy" {
		t.Errorf("unexpected buy request: %s %v", gotMethod, gotBody)
	}

	if err := client.Frames.SetActive(context.Background(), 7, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPut || gotBody["action"] != "set_active" {
		t.Errorf("unexpected set_active request: %s %v", gotMethod, gotBody)
	}
	if gotBody["user_id"] != float64(7) || gotBody["frame_id"] != float64(2) {
		t.Errorf("unexpected ids: %v", gotBody)
	}
}

func TestMarketService_Listings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{"id": 9, "seller_id": 7, "item_type": "frame", "item_id": 2,
					"price": 80.0, "seller_username": "neo", "item_name": "Neon"},
			},
		})
	})

	items, err := client.Market.Listings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ItemType != ItemTypeFrame {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestMarketService_Sell(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["action"] != "sell" || body["item_type"] != "game" {
			t.Errorf("unexpected sell body: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"item_id": 14, "message": "Товар выставлен на продажу",
		})
	})

	result, err := client.Market.Sell(context.Background(), SellRequest{
		SellerID: 7, ItemType: ItemTypeGame, ItemID: 3, Price: 250,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ItemID != 14 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestMarketService_Buy_ItemGone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Товар не найден"})
	})

	_, err := client.Market.Buy(context.Background(), 14, 7)
	var apiErr *Error
	if !errors.As(err, &apiErr) || !apiErr.IsNotFound() {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestMarketService_Cancel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		body := decodeBody(t, r)
		if body["item_id"] != float64(14) || body["seller_id"] != float64(7) {
			t.Errorf("unexpected cancel body: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})

	if err := client.Market.Cancel(context.Background(), 14, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWithIdempotencyKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Idempotency-Key"); got != "key-123" {
			t.Errorf("expected idempotency key header, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})

	ctx := WithIdempotencyKey(context.Background(), "key-123")
	if err := client.Frames.Buy(ctx, 7, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseError_UnparseableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream exploded</html>"))
	})

	_, err := client.Market.Listings(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}
