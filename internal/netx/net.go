// Package netx moves raw bytes to and from S3-compatible storage through
// presigned URLs. The backend only vends the URLs; clients transfer payloads
// directly.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// UploadToS3PresignedURL PUTs file to a presigned URL. Anything but 200
// comes back as an error carrying the response body.
func UploadToS3PresignedURL(url string, file []byte) error {
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(file))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError("upload", resp)
	}
	return nil
}

// DownloadFromS3PresignedURL GETs the object behind a presigned URL and
// returns its bytes.
func DownloadFromS3PresignedURL(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("download", resp)
	}
	return io.ReadAll(resp.Body)
}

func statusError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%s failed: %s; body: %s", op, resp.Status, b)
}
