// Package notification models audience-targeted notifications derived from
// order and request events, together with the closed event catalog and its
// default audiences.
package notification
