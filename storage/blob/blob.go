// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package blob

import (
	"bytes"
	"context"
	"io"

	"github.com/MaxJoas/article-recommendations/config"
	"github.com/juju/errors"
)

// Store is a flat namespace of named blobs.
type Store interface {
	// Open a blob for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Create a blob for writing. The returned channel is closed once the content written
	// before Close has been persisted.
	Create(ctx context.Context, name string) (io.WriteCloser, chan struct{}, error)
	List(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, name string) error
}

// Open the blob store of a snapshot configuration.
func Open(cfg config.SnapshotConfig) (Store, error) {
	switch cfg.Store {
	case "posix", "":
		return NewPOSIX(cfg.Dir), nil
	case "s3":
		s3, err := NewS3(cfg.S3)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return s3, nil
	case "gcs":
		gcs, err := NewGCS(cfg.GCS)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return gcs, nil
	case "azure":
		azure, err := NewAzureBlob(cfg.Azure)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return azure, nil
	}
	return nil, errors.NotSupportedf("blob store %q", cfg.Store)
}

// WriteAll writes a blob and waits until it is persisted.
func WriteAll(ctx context.Context, store Store, name string, data []byte) error {
	w, done, err := store.Create(ctx, name)
	if err != nil {
		return errors.Trace(err)
	}
	if _, err = io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		<-done
		return errors.Trace(err)
	}
	if err = w.Close(); err != nil {
		<-done
		return errors.Trace(err)
	}
	<-done
	return nil
}

// ReadAll reads a blob.
func ReadAll(ctx context.Context, store Store, name string) ([]byte, error) {
	r, err := store.Open(ctx, name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	return data, errors.Trace(err)
}
