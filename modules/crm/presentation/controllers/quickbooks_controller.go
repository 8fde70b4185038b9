package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ledgerflow/practice-sdk/modules/crm/domain/aggregates/client"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/httpapi"
	"github.com/ledgerflow/practice-sdk/pkg/webhooks"
)

// QuickBooksController receives signed webhook notifications from the
// accounting integration and republishes them on the internal event bus.
type QuickBooksController struct {
	app      application.Application
	verifier *webhooks.Verifier
	basePath string
}

func NewQuickBooksController(app application.Application, verifier *webhooks.Verifier) application.Controller {
	return &QuickBooksController{
		app:      app,
		verifier: verifier,
		basePath: "/webhooks/quickbooks",
	}
}

func (c *QuickBooksController) Key() string {
	return c.basePath
}

func (c *QuickBooksController) Register(r *mux.Router) {
	r.Handle(c.basePath, c.verifier.Middleware(http.HandlerFunc(c.Receive))).Methods(http.MethodPost)
}

type quickBooksNotification struct {
	EventNotifications []struct {
		RealmID string `json:"realmId"`
		Events  []struct {
			Entity     string `json:"entity"`
			Operation  string `json:"operation"`
			ExternalID string `json:"id"`
			ClientID   string `json:"clientId"`
			Amount     string `json:"amount"`
		} `json:"events"`
	} `json:"eventNotifications"`
}

func (c *QuickBooksController) Receive(w http.ResponseWriter, r *http.Request) {
	var payload quickBooksNotification
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", nil)
		return
	}

	accepted := 0
	for _, notification := range payload.EventNotifications {
		for _, ev := range notification.Events {
			if ev.Entity != "Payment" || ev.Operation != "Create" {
				continue
			}
			c.app.EventBus().Publish(&client.PaymentReceivedEvent{
				ClientID:   ev.ClientID,
				ExternalID: ev.ExternalID,
				Amount:     ev.Amount,
			})
			accepted++
		}
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]int{"accepted": accepted})
}
