package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/de-tools/procurement-atlas/pkg/services/ingest"
	"github.com/rs/zerolog"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobGetter downloads a blob from a storage container.
type BlobGetter interface {
	Download(ctx context.Context, container, blob string) (io.ReadCloser, error)
}

type blobClient struct {
	client *azblob.Client
}

func (c *blobClient) Download(ctx context.Context, container, blob string) (io.ReadCloser, error) {
	resp, err := c.client.DownloadStream(ctx, container, blob, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

type azureSource struct {
	client         BlobGetter
	container      string
	recordsBlob    string
	categoriesBlob string
}

func NewAzureSource(client BlobGetter, container, recordsBlob, categoriesBlob string) Source {
	return &azureSource{
		client:         client,
		container:      container,
		recordsBlob:    recordsBlob,
		categoriesBlob: categoriesBlob,
	}
}

// AzureFactory expects "container" and "records" (a blob name) plus either
// "connection_string" or "account" (the storage account, authenticated with
// the default Azure credential chain). "categories" is optional.
func AzureFactory(_ context.Context, profile domain.SourceProfile) (Source, error) {
	container, err := requireSetting(profile, "container")
	if err != nil {
		return nil, err
	}
	recordsBlob, err := requireSetting(profile, "records")
	if err != nil {
		return nil, err
	}

	client, err := newAzureClient(profile)
	if err != nil {
		return nil, err
	}
	return NewAzureSource(&blobClient{client: client}, container, recordsBlob, profile.Get("categories", "")), nil
}

func newAzureClient(profile domain.SourceProfile) (*azblob.Client, error) {
	if conn := profile.Get("connection_string", ""); conn != "" {
		client, err := azblob.NewClientFromConnectionString(conn, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client: %w", err)
		}
		return client, nil
	}

	account, err := requireSetting(profile, "account")
	if err != nil {
		return nil, err
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain Azure credential: %w", err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", account)
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}
	return client, nil
}

func (s *azureSource) Records(ctx context.Context) ([]domain.ProcurementRecord, error) {
	format, err := ingest.FormatFromName(s.recordsBlob)
	if err != nil {
		return nil, err
	}
	body, err := s.download(ctx, s.recordsBlob)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ingest.DecodeRecords(format, body)
}

func (s *azureSource) Categories(ctx context.Context) (domain.CategoryTable, error) {
	if s.categoriesBlob == "" {
		return domain.CategoryTable{}, nil
	}
	format, err := ingest.FormatFromName(s.categoriesBlob)
	if err != nil {
		return nil, err
	}
	body, err := s.download(ctx, s.categoriesBlob)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ingest.DecodeCategories(format, body)
}

func (s *azureSource) download(ctx context.Context, blob string) (io.ReadCloser, error) {
	zerolog.Ctx(ctx).Debug().Str("container", s.container).Str("blob", blob).Msg("downloading blob")
	body, err := s.client.Download(ctx, s.container, blob)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s/%s", ErrBlobNotFound, s.container, blob)
		}
		return nil, fmt.Errorf("failed to download %s/%s: %w", s.container, blob, err)
	}
	return body, nil
}

func (s *azureSource) Close() error {
	return nil
}
