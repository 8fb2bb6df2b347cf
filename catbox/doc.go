// Package catbox is a typed client for the Catbox file hosting API.
//
// Every operation is a multipart POST to a single endpoint. Submitter
// encodes and sends one of the eight Request types; Client pre-fills the
// account userhash and exposes one method per operation:
//
//	client, err := catbox.NewClient(os.Getenv("CATBOX_USERHASH"))
//	if err != nil {
//		return err
//	}
//	url, err := client.UploadFile(ctx, data, "cat.png")
//
// The response body is returned as-is. Catbox answers with the resource URL
// on success but may also answer with an error message and a 200 status.
package catbox
