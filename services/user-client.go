package services

import (
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
)

// UserClient asks the external users service whether a user exists before
// that user is added to a project. Calls go through a circuit breaker so a
// down users service does not hang every membership change.
type UserClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewUserClient(baseURL string, client *http.Client, breaker *gobreaker.CircuitBreaker) *UserClient {
	return &UserClient{baseURL: baseURL, client: client, breaker: breaker}
}

func (c *UserClient) UserExists(userID string) (bool, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.client.Get(fmt.Sprintf("%s/api/users/%s", c.baseURL, userID))
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			return true, nil
		case http.StatusNotFound:
			return false, nil
		default:
			return nil, fmt.Errorf("users service returned status %d", resp.StatusCode)
		}
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}
