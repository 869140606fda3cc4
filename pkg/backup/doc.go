// Package backup sequences a VK to Yandex Disk backup run.
//
// A run lists the profile photos, asks the storage provider to fetch each one
// by URL into VK_Photos_<user id>, and then writes the manifest. Uploads are
// strictly sequential; the first failure aborts the run before the manifest
// is touched.
//
//	b, err := backup.NewFromConfig(cfg, ui.NewProgressDisplay("Uploading", false), log)
//	if err != nil {
//	    return err
//	}
//	summary, err := b.Run(ctx)
package backup
