// Package fcm delivers push notifications through an FCM-compatible HTTP
// endpoint that accepts multicast sends: one request carries up to 500
// registration tokens and reports how many were delivered successfully.
package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/openlake/socialnotify/internal/notifywatch"
)

// DefaultEndpoint is the FCM legacy HTTP send endpoint.
const DefaultEndpoint = "https://fcm.googleapis.com/fcm/send"

// ErrUnexpectedStatus indicates the push endpoint answered with a non-200
// status code.
var ErrUnexpectedStatus = errors.New("unexpected response status from push endpoint")

// notification is the display payload shared by every token in the request.
type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

// message is the multicast send request. The android and apns blocks carry
// the platform defaults applied to every delivery: default notification
// sound on both platforms.
type message struct {
	RegistrationIDs []string     `json:"registration_ids"`
	Notification    notification `json:"notification"`
	Android         struct {
		Notification struct {
			Sound string `json:"sound"`
		} `json:"notification"`
	} `json:"android"`
	APNS struct {
		Payload struct {
			APS struct {
				Sound string `json:"sound"`
			} `json:"aps"`
		} `json:"payload"`
	} `json:"apns"`
}

// response is the subset of the multicast send response the dispatcher needs.
type response struct {
	Success int `json:"success"` // Number of tokens delivered to successfully
	Failure int `json:"failure"` // Number of tokens that failed
}

type client struct {
	httpClient *http.Client // HTTP client used for send requests
	endpoint   string       // Push endpoint URL
	serverKey  string       // FCM server key used for authorization
}

// NewClient returns a push sender talking to the given FCM-compatible
// endpoint using the given HTTP client and server key.
func NewClient(httpClient *http.Client, endpoint, serverKey string) *client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &client{
		httpClient: httpClient,
		endpoint:   endpoint,
		serverKey:  serverKey,
	}
}

// SendBatch implements the notifywatch.PushSender interface.
//
// It submits the batch in a single multicast request and returns the
// endpoint's reported success count. Individual token failures inside an
// accepted request are reflected only in that count, never as an error.
func (c *client) SendBatch(ctx context.Context, batch notifywatch.MessageBatch) (int, error) {
	msg := message{
		RegistrationIDs: batch.Tokens,
		Notification: notification{
			Title: batch.Notification.Title,
			Body:  batch.Notification.Body,
			Image: batch.Notification.ImageURL,
		},
	}
	msg.Android.Notification.Sound = "default"
	msg.APNS.Payload.APS.Sound = "default"

	body, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: [%d]", ErrUnexpectedStatus, res.StatusCode)
	}

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return 0, err
	}

	return data.Success, nil
}

// Compile-time assertion that client satisfies the PushSender interface.
var _ notifywatch.PushSender = (*client)(nil)
