package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// doJSON sends req and decodes a 2xx body into out. Non-2xx responses are
// turned into errors by decodeErr; network timeouts count as temporary.
func doJSON(client *http.Client, req *http.Request, out any, decodeErr func(int, io.Reader) error) error {
	resp, err := client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("%w: %w", ErrTemporary, err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeErr(resp.StatusCode, io.LimitReader(resp.Body, 1<<16))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
