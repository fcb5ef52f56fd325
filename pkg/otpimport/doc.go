// Package otpimport imports batches of otpauth URIs with per-item failure
// isolation.
//
// Each item is decoded with totp.RecordFromURI and handed to an AddFunc,
// normally a store's create operation. Items are processed strictly in
// order on the calling goroutine so the store's uniqueness check sees one
// add at a time. Every item yields a Result tagged success, duplicate or
// invalid, folded into an Outcome with counts and a Report of the failures.
//
//	items, err := otpimport.ReadItems(f)
//	if err != nil {
//	    return err // errors.Is(err, otpimport.ErrFileProcess)
//	}
//
//	out, err := otpimport.New(otpimport.WithLogger(log)).Process(ctx, items,
//	    func(ctx context.Context, rec totp.Record) error {
//	        _, err := store.Create(ctx, userID, rec)
//	        return err
//	    })
//	if err != nil {
//	    // add failed with something other than a duplicate; out holds the
//	    // items handled before the failure
//	}
//	if out.HasFailures() {
//	    _ = otpimport.WriteReport(reportFile, out.Report)
//	}
package otpimport
