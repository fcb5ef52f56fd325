// Package file stores the artifacts produced and consumed by the vault: bulk
// import sources, plain-text exports, QR images and import failure reports.
//
// Two backends implement Storage:
//   - LocalStorage keeps files under a base directory and refuses paths that
//     escape it.
//   - S3Storage keeps objects in an S3 bucket (or any S3-compatible service)
//     under an optional key prefix.
//
// Paths are always slash-separated and relative to the backend root.
//
// Example usage with LocalStorage:
//
//	storage, err := file.NewLocalStorage("./data")
//	if err != nil {
//	    return err
//	}
//
//	f, err := storage.Put(ctx, "exports/export_20240101_120000.txt", strings.NewReader(body))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(storage.URL(f.RelativePath))
//
// Example usage with S3Storage:
//
//	storage, err := file.NewS3Storage(ctx, file.S3Config{
//	    Bucket:      "otpvault",
//	    Region:      "us-east-1",
//	    AccessKeyID: "key",
//	    SecretKey:   "secret",
//	})
//	if err != nil {
//	    return err
//	}
//
//	rc, err := storage.Open(ctx, "imports/batch.txt")
//	if errors.Is(err, file.ErrFileNotFound) {
//	    // nothing to import
//	}
//
// Missing objects are reported as ErrFileNotFound by both backends.
package file
