// Package editor implements the locale-merge form controller used by the admin
// UI. A Controller keeps one draft per configured locale of a localized record,
// fans shared fields out to every draft, machine-translates the default locale
// into other tabs and saves each locale through a Backend.
//
// Every I/O operation reports exactly one Notification and clears its status
// flag on return, whatever the outcome.
package editor
