package powerbi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

// FilePoster is the optional transport capability needed for file
// uploads. *transport.Session implements it.
type FilePoster interface {
	PostFile(ctx context.Context, path string, params url.Values, filename string, r io.Reader) (json.RawMessage, error)
}

// NameConflict controls how an upload behaves when the target dataset
// name already exists.
type NameConflict string

const (
	NameConflictIgnore             NameConflict = "Ignore"
	NameConflictAbort              NameConflict = "Abort"
	NameConflictOverwrite          NameConflict = "Overwrite"
	NameConflictCreateOrOverwrite  NameConflict = "CreateOrOverwrite"
	NameConflictGenerateUniqueName NameConflict = "GenerateUniqueName"
)

// Imports groups the import operations.
type Imports struct {
	rt resource.Requester
}

// Get retrieves a single import, workspace-scoped when group is non-nil.
func (im *Imports) Get(ctx context.Context, ref, group resource.Reference) (*Import, error) {
	i := NewImport(im.rt, resource.Resolve(ref), resource.WithGroup(resource.Resolve(group)))
	if err := i.Materialize(ctx); err != nil {
		return nil, err
	}
	return i, nil
}

// List lists imports, workspace-scoped when group is non-nil.
func (im *Imports) List(ctx context.Context, group resource.Reference) ([]*Import, error) {
	groupID := resource.Resolve(group)
	path := resource.CollectionPath(resource.KindImport, resource.GroupParent(groupID))
	return listEntities(ctx, im.rt, path, resource.Query{}, false, groupID,
		func(id, gid string, raw map[string]any) *Import {
			return NewImport(im.rt, id, resource.WithGroup(gid), resource.WithRaw(raw))
		})
}

// Upload imports the content read from r as datasetDisplayName, into the
// workspace named by group when non-nil. The returned Import is
// pre-hydrated from the service's response; its ImportState typically
// starts as "Publishing" and can be polled with Refresh.
//
// The transport must support multipart uploads (FilePoster); the bare
// get/post contract is not enough.
func (im *Imports) Upload(ctx context.Context, group resource.Reference, datasetDisplayName string, conflict NameConflict, r io.Reader) (*Import, error) {
	poster, ok := im.rt.(FilePoster)
	if !ok {
		return nil, fmt.Errorf("upload: transport %T does not support file uploads", im.rt)
	}
	if datasetDisplayName == "" {
		return nil, fmt.Errorf("upload: a dataset display name is required")
	}

	groupID := resource.Resolve(group)
	path := resource.CollectionPath(resource.KindImport, resource.GroupParent(groupID))

	params := url.Values{}
	params.Set("datasetDisplayName", datasetDisplayName)
	if conflict != "" {
		params.Set("nameConflict", string(conflict))
	}

	body, err := poster.PostFile(ctx, path, params, datasetDisplayName, r)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	raw, err := resource.DecodeObject(body)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	id, _ := raw["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("upload: response has no import id: %w", resource.ErrShapeMismatch)
	}
	return NewImport(im.rt, id, resource.WithGroup(groupID), resource.WithRaw(raw)), nil
}

// UploadFile imports a .pbix (or other supported) file from fsys. The
// dataset display name defaults to the file's base name when empty.
func (im *Imports) UploadFile(ctx context.Context, fsys afero.Fs, path string, group resource.Reference, datasetDisplayName string, conflict NameConflict) (*Import, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("upload: opening %s: %w", path, err)
	}
	defer f.Close()

	if datasetDisplayName == "" {
		datasetDisplayName = filepath.Base(path)
	}
	return im.Upload(ctx, group, datasetDisplayName, conflict, f)
}
