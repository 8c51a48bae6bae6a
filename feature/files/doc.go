// Package files implements batch transfer of encrypted room files.
//
// Files are content addressed: an id always names the same bytes, so uploads
// overwrite freely and repeated ids in a batch are transferred once. Objects
// live in the configured bucket under {prefix}/{fileId}.
//
// Every item of a batch runs as its own task. A failing item is logged and
// reported in the errored partition; it never cancels its siblings.
//
// # Routes
//
//   - PUT  /files/:prefix           upload encoded files (JSON, base64 data)
//   - POST /files/:prefix/download  download and decode files (X-Room-Key header)
package files
