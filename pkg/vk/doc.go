// Package vk lists profile photos through the VK API photos.get method.
//
// Every returned photo is reduced to a models.PhotoRecord carrying the URL and
// type label of its largest size variant together with its like count and
// upload date. Non-2xx responses and network failures surface as transport
// errors; a body without a response object, a VK error object or a photo
// without size variants surfaces as a schema error.
package vk
