// Package yadisk is a minimal Yandex Disk REST client.
//
// It creates folders and requests server-side uploads by URL, so photo bytes
// never pass through this process. Every request carries an
// "Authorization: OAuth <token>" header.
package yadisk
