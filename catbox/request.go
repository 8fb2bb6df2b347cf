package catbox

import "strings"

// RequestType is the value of the reqtype form field.
type RequestType string

const (
	ReqFileUpload      RequestType = "fileupload"
	ReqURLUpload       RequestType = "urlupload"
	ReqDeleteFiles     RequestType = "deletefiles"
	ReqCreateAlbum     RequestType = "createalbum"
	ReqEditAlbum       RequestType = "editalbum"
	ReqAddToAlbum      RequestType = "addtoalbum"
	ReqRemoveFromAlbum RequestType = "removefromalbum"
	ReqDeleteAlbum     RequestType = "deletealbum"
)

// Form field names understood by the Catbox API.
const (
	FieldReqType  = "reqtype"
	FieldUserHash = "userhash"
	FieldFile     = "fileToUpload"
	FieldURL      = "url"
	FieldFiles    = "files"
	FieldTitle    = "title"
	FieldDesc     = "desc"
	FieldShort    = "short"
)

// Request is one of the eight Catbox operations. The set is closed: only
// the request types in this package implement it.
type Request interface {
	Type() RequestType
	isRequest()
}

// FileUploadRequest uploads raw file content. Leave UserHash empty for an
// anonymous upload.
type FileUploadRequest struct {
	UserHash string
	FileName string
	Data     []byte
}

// URLUploadRequest asks Catbox to fetch a remote URL. Leave UserHash empty
// for an anonymous upload.
type URLUploadRequest struct {
	UserHash string
	URL      string
}

// DeleteFilesRequest deletes files owned by UserHash.
type DeleteFilesRequest struct {
	UserHash string
	Files    string
}

// CreateAlbumRequest creates an album from already uploaded files.
// Albums created without a UserHash can never be edited or deleted.
// Catbox currently limits albums to 500 files.
type CreateAlbumRequest struct {
	UserHash    string
	Title       string
	Description *string
	Files       string
}

// EditAlbumRequest replaces every attribute of an album. Description and
// Files are always sent, so an empty value clears them.
type EditAlbumRequest struct {
	UserHash    string
	Short       string
	Title       string
	Description string
	Files       string
}

// AddToAlbumRequest appends files to an album.
type AddToAlbumRequest struct {
	UserHash string
	Short    string
	Files    string
}

// RemoveFromAlbumRequest removes files from an album.
type RemoveFromAlbumRequest struct {
	UserHash string
	Short    string
	Files    string
}

// DeleteAlbumRequest deletes an album. The files it contains are kept.
type DeleteAlbumRequest struct {
	UserHash string
	Short    string
}

func (FileUploadRequest) Type() RequestType      { return ReqFileUpload }
func (URLUploadRequest) Type() RequestType       { return ReqURLUpload }
func (DeleteFilesRequest) Type() RequestType     { return ReqDeleteFiles }
func (CreateAlbumRequest) Type() RequestType     { return ReqCreateAlbum }
func (EditAlbumRequest) Type() RequestType       { return ReqEditAlbum }
func (AddToAlbumRequest) Type() RequestType      { return ReqAddToAlbum }
func (RemoveFromAlbumRequest) Type() RequestType { return ReqRemoveFromAlbum }
func (DeleteAlbumRequest) Type() RequestType     { return ReqDeleteAlbum }

func (FileUploadRequest) isRequest()      {}
func (URLUploadRequest) isRequest()       {}
func (DeleteFilesRequest) isRequest()     {}
func (CreateAlbumRequest) isRequest()     {}
func (EditAlbumRequest) isRequest()       {}
func (AddToAlbumRequest) isRequest()      {}
func (RemoveFromAlbumRequest) isRequest() {}
func (DeleteAlbumRequest) isRequest()     {}

// FileIdentifierList joins file identifiers with a single space, the only
// list format the API accepts. An empty slice yields an empty string.
func FileIdentifierList(files []string) string {
	return strings.Join(files, " ")
}

// formField is a single plain-text part of the encoded body.
type formField struct {
	name  string
	value string
}

// filePart is the binary part of a file upload.
type filePart struct {
	name string
	data []byte
}

// encoding is the validated wire form of a request.
type encoding struct {
	fields []formField
	file   *filePart
}

func (e *encoding) add(name, value string) {
	e.fields = append(e.fields, formField{name: name, value: value})
}

// addOptional omits the field entirely when value is empty.
func (e *encoding) addOptional(name, value string) {
	if value != "" {
		e.add(name, value)
	}
}

// deref turns pointer requests into values so encode only has to handle
// one form of each type. A nil pointer becomes a nil Request.
func deref(req Request) Request {
	switch r := req.(type) {
	case *FileUploadRequest:
		if r != nil {
			return *r
		}
	case *URLUploadRequest:
		if r != nil {
			return *r
		}
	case *DeleteFilesRequest:
		if r != nil {
			return *r
		}
	case *CreateAlbumRequest:
		if r != nil {
			return *r
		}
	case *EditAlbumRequest:
		if r != nil {
			return *r
		}
	case *AddToAlbumRequest:
		if r != nil {
			return *r
		}
	case *RemoveFromAlbumRequest:
		if r != nil {
			return *r
		}
	case *DeleteAlbumRequest:
		if r != nil {
			return *r
		}
	default:
		return req
	}
	return nil
}

// encode validates req and lays out its form fields in wire order.
func encode(req Request) (*encoding, error) {
	req = deref(req)
	if req == nil {
		return nil, &ValidationError{Field: FieldReqType, Err: ErrMissingField}
	}

	enc := &encoding{}
	var required []formField

	switch r := req.(type) {
	case FileUploadRequest:
		return encodeFileUpload(r)
	case URLUploadRequest:
		required = []formField{{FieldURL, r.URL}}
		enc.add(FieldReqType, string(ReqURLUpload))
		enc.addOptional(FieldUserHash, r.UserHash)
		enc.add(FieldURL, r.URL)
	case DeleteFilesRequest:
		required = []formField{{FieldUserHash, r.UserHash}, {FieldFiles, r.Files}}
		enc.add(FieldReqType, string(ReqDeleteFiles))
		enc.add(FieldUserHash, r.UserHash)
		enc.add(FieldFiles, r.Files)
	case CreateAlbumRequest:
		required = []formField{{FieldTitle, r.Title}, {FieldFiles, r.Files}}
		enc.add(FieldReqType, string(ReqCreateAlbum))
		enc.addOptional(FieldUserHash, r.UserHash)
		enc.add(FieldTitle, r.Title)
		if r.Description != nil {
			enc.add(FieldDesc, *r.Description)
		}
		enc.add(FieldFiles, r.Files)
	case EditAlbumRequest:
		required = []formField{
			{FieldUserHash, r.UserHash}, {FieldShort, r.Short}, {FieldTitle, r.Title},
			{FieldDesc, r.Description}, {FieldFiles, r.Files},
		}
		enc.add(FieldReqType, string(ReqEditAlbum))
		enc.add(FieldUserHash, r.UserHash)
		enc.add(FieldShort, r.Short)
		enc.add(FieldTitle, r.Title)
		enc.add(FieldDesc, r.Description)
		enc.add(FieldFiles, r.Files)
	case AddToAlbumRequest:
		required = []formField{{FieldUserHash, r.UserHash}, {FieldShort, r.Short}, {FieldFiles, r.Files}}
		enc.add(FieldReqType, string(ReqAddToAlbum))
		enc.add(FieldUserHash, r.UserHash)
		enc.add(FieldShort, r.Short)
		enc.add(FieldFiles, r.Files)
	case RemoveFromAlbumRequest:
		required = []formField{{FieldUserHash, r.UserHash}, {FieldShort, r.Short}, {FieldFiles, r.Files}}
		enc.add(FieldReqType, string(ReqRemoveFromAlbum))
		enc.add(FieldUserHash, r.UserHash)
		enc.add(FieldShort, r.Short)
		enc.add(FieldFiles, r.Files)
	case DeleteAlbumRequest:
		required = []formField{{FieldUserHash, r.UserHash}, {FieldShort, r.Short}}
		enc.add(FieldReqType, string(ReqDeleteAlbum))
		enc.add(FieldUserHash, r.UserHash)
		enc.add(FieldShort, r.Short)
	default:
		return nil, &ValidationError{Operation: req.Type(), Field: FieldReqType, Err: ErrUnsupportedRequest}
	}

	if err := checkRequired(req.Type(), required); err != nil {
		return nil, err
	}
	return enc, nil
}

func encodeFileUpload(r FileUploadRequest) (*encoding, error) {
	if err := checkRequired(ReqFileUpload, []formField{{FieldFile, r.FileName}}); err != nil {
		return nil, err
	}
	if len(r.Data) == 0 {
		return nil, &ValidationError{Operation: ReqFileUpload, Field: FieldFile, Err: ErrMissingField}
	}

	enc := &encoding{}
	enc.add(FieldReqType, string(ReqFileUpload))
	enc.addOptional(FieldUserHash, r.UserHash)
	enc.file = &filePart{name: r.FileName, data: r.Data}
	return enc, nil
}

func checkRequired(op RequestType, fields []formField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Operation: op, Field: f.name, Err: ErrMissingField}
		}
	}
	return nil
}
