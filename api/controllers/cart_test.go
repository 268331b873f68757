package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/shopmart-io/shopmart-backend/api/middleware"
	cartsvc "github.com/shopmart-io/shopmart-backend/internal/carts"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
)

type stubCartService struct {
	addInput  *cartsvc.AddItemInput
	addUserID uuid.UUID
	addErr    error
	dto       *cartsvc.CartDTO
}

func (s *stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cartsvc.CartDTO, error) {
	return s.dto, nil
}

func (s *stubCartService) AddItem(ctx context.Context, userID uuid.UUID, input cartsvc.AddItemInput) (*cartsvc.CartDTO, error) {
	s.addUserID = userID
	s.addInput = &input
	if s.addErr != nil {
		return nil, s.addErr
	}
	return s.dto, nil
}

func (s *stubCartService) SetQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*cartsvc.CartDTO, error) {
	return s.dto, nil
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	return s.dto, nil
}

func (s *stubCartService) ClearCart(ctx context.Context, userID uuid.UUID) (*cartsvc.CartDTO, error) {
	return s.dto, nil
}

func authedRequest(method, target string, body string, userID uuid.UUID) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	ctx := middleware.WithUserID(r.Context(), userID.String())
	return r.WithContext(ctx)
}

func TestAddCartItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	stub := &stubCartService{dto: &cartsvc.CartDTO{UserID: userID}}

	body := `{"product_id":"` + productID.String() + `","quantity":3}`
	w := httptest.NewRecorder()
	AddCartItem(stub, nil)(w, authedRequest(http.MethodPost, "/api/cart/items", body, userID))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if stub.addUserID != userID {
		t.Fatalf("service called with wrong user: %s", stub.addUserID)
	}
	if stub.addInput == nil || stub.addInput.ProductID != productID || stub.addInput.Quantity != 3 {
		t.Fatalf("unexpected service input: %+v", stub.addInput)
	}

	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.UserID != userID {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestAddCartItemRejectsBadPayload(t *testing.T) {
	userID := uuid.New()
	stub := &stubCartService{dto: &cartsvc.CartDTO{}}

	tests := []struct {
		name string
		body string
	}{
		{name: "missingProduct", body: `{"quantity":1}`},
		{name: "zeroQuantity", body: `{"product_id":"` + uuid.NewString() + `","quantity":0}`},
		{name: "malformedJSON", body: `{"product_id":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			AddCartItem(stub, nil)(w, authedRequest(http.MethodPost, "/api/cart/items", tt.body, userID))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCartRequiresUserContext(t *testing.T) {
	stub := &stubCartService{dto: &cartsvc.CartDTO{}}

	w := httptest.NewRecorder()
	GetCart(stub, nil)(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %q", envelope.Error.Code)
	}
}

func TestAddCartItemMapsServiceErrors(t *testing.T) {
	userID := uuid.New()
	stub := &stubCartService{addErr: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}

	body := `{"product_id":"` + uuid.NewString() + `","quantity":1}`
	w := httptest.NewRecorder()
	AddCartItem(stub, nil)(w, authedRequest(http.MethodPost, "/api/cart/items", body, userID))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
