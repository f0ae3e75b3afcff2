// Package domain contains the core entities of the card drawing system:
// users, memory cards, draw sessions, and draw settings, together with
// their validation rules and the cooldown defaults the draw engine falls
// back to. It has no dependency on storage or delivery concerns.
package domain
