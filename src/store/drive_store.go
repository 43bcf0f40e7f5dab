package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	drivev3 "google.golang.org/api/drive/v3"
)

const folderMimeType = "application/vnd.google-apps.folder"

func escapeQueryName(name string) string {
	return strings.ReplaceAll(name, "'", "\\'")
}

// EnsureFolder finds or creates a child folder under parentID and returns its id.
func EnsureFolder(ctx context.Context, svc *drivev3.Service, parentID, name string) (string, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType='%s' and name='%s' and trashed=false",
		parentID, folderMimeType, escapeQueryName(name))
	list, err := svc.Files.List().
		Q(q).
		Fields("files(id,name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up drive folder %s: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	created, err := svc.Files.Create(&drivev3.File{
		Name:     name,
		Parents:  []string{parentID},
		MimeType: folderMimeType,
	}).Fields("id").SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create drive folder %s: %w", name, err)
	}
	return created.Id, nil
}

// DriveStore keeps one <prefix><id>.json file per record inside a Drive
// folder. The prefix is used when multiple collections share a folder
// (fallback for accounts that cannot create child folders).
type DriveStore[T Entity] struct {
	svc      *drivev3.Service
	folderID string
	prefix   string
	ids      *idCache
}

func NewDriveStore[T Entity](svc *drivev3.Service, folderID, prefix string) (*DriveStore[T], error) {
	ids, err := newIDCache()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize id cache: %w", err)
	}
	return &DriveStore[T]{svc: svc, folderID: folderID, prefix: prefix, ids: ids}, nil
}

func (s *DriveStore[T]) fileName(id string) string {
	return s.prefix + id + ".json"
}

func (s *DriveStore[T]) findFileID(ctx context.Context, name string) (string, error) {
	q := fmt.Sprintf("'%s' in parents and name='%s' and trashed=false",
		s.folderID, escapeQueryName(name))
	list, err := s.svc.Files.List().
		Q(q).
		Fields("files(id,name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

func (s *DriveStore[T]) download(ctx context.Context, fileID string) (T, error) {
	var item T
	resp, err := s.svc.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return item, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return item, err
	}
	if err := json.Unmarshal(body, &item); err != nil {
		return item, err
	}
	if err := item.Validate(); err != nil {
		return item, err
	}
	return item, nil
}

func (s *DriveStore[T]) List(ctx context.Context) ([]T, error) {
	var files []*drivev3.File
	pageToken := ""
	for {
		call := s.svc.Files.List().
			Q(fmt.Sprintf("'%s' in parents and trashed=false", s.folderID)).
			Fields("nextPageToken,files(id,name)").
			PageSize(1000).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list drive folder: %w", err)
		}
		files = append(files, res.Files...)
		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	items := make([]T, 0, len(files))
	for _, f := range files {
		if !strings.HasSuffix(f.Name, ".json") {
			continue
		}
		if s.prefix != "" && !strings.HasPrefix(f.Name, s.prefix) {
			continue
		}
		item, err := s.download(ctx, f.Id)
		if err != nil {
			// Malformed records are skipped, not fatal.
			log.Printf("ERROR: Skipping malformed drive record %s: %v", f.Name, err)
			continue
		}
		s.ids.Set(item.GetID(), f.Id)
		items = append(items, item)
	}
	return items, nil
}

func (s *DriveStore[T]) resolveFileID(ctx context.Context, id string) (string, error) {
	if fileID, ok := s.ids.Get(id); ok {
		return fileID, nil
	}
	return s.findFileID(ctx, s.fileName(id))
}

func (s *DriveStore[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	fileID, err := s.resolveFileID(ctx, id)
	if err != nil {
		return zero, false, fmt.Errorf("failed to look up drive record %s: %w", id, err)
	}
	if fileID == "" {
		return zero, false, nil
	}
	item, err := s.download(ctx, fileID)
	if err != nil {
		return zero, false, fmt.Errorf("failed to read drive record %s: %w", id, err)
	}
	s.ids.Set(id, fileID)
	return item, true, nil
}

func (s *DriveStore[T]) Put(ctx context.Context, item T) (T, error) {
	var zero T
	if err := item.Validate(); err != nil {
		return zero, err
	}
	id := item.GetID()

	body, err := json.Marshal(item)
	if err != nil {
		return zero, fmt.Errorf("failed to encode record %s: %w", id, err)
	}

	fileID, err := s.resolveFileID(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("failed to look up drive record %s: %w", id, err)
	}

	if fileID != "" {
		_, err = s.svc.Files.Update(fileID, &drivev3.File{}).
			Media(bytes.NewReader(body)).
			SupportsAllDrives(true).
			Context(ctx).
			Do()
		if err != nil {
			return zero, fmt.Errorf("failed to update drive record %s: %w", id, err)
		}
		s.ids.Set(id, fileID)
		return item, nil
	}

	created, err := s.svc.Files.Create(&drivev3.File{
		Name:     s.fileName(id),
		Parents:  []string{s.folderID},
		MimeType: "application/json",
	}).
		Media(bytes.NewReader(body)).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return zero, fmt.Errorf("failed to create drive record %s: %w", id, err)
	}
	s.ids.Set(id, created.Id)
	return item, nil
}

func (s *DriveStore[T]) Delete(ctx context.Context, id string) error {
	fileID, err := s.resolveFileID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up drive record %s: %w", id, err)
	}
	if fileID == "" {
		return nil
	}
	if err := s.svc.Files.Delete(fileID).SupportsAllDrives(true).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete drive record %s: %w", id, err)
	}
	s.ids.Del(id)
	return nil
}
