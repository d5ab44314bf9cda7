package state

import tele "gopkg.in/telebot.v4"

// SessionOptions configures WithSession.
type SessionOptions[T any] struct {
	// Seed builds the initial session for a new user.
	Seed func(c tele.Context) *T
	// Refresh copies per-update data (names, handles) into the session.
	Refresh func(c tele.Context, v *T)
}

// WithSession makes sure every update from a known sender has a session
// before downstream handlers run. Updates without a sender pass through.
func WithSession[T any](store *Store[T], opts SessionOptions[T]) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || store == nil {
				return next(c)
			}
			var seed func() *T
			if opts.Seed != nil {
				seed = func() *T { return opts.Seed(c) }
			}
			_ = store.Update(user.ID, seed, func(v *T) error {
				if opts.Refresh != nil {
					opts.Refresh(c, v)
				}
				return nil
			})
			return next(c)
		}
	}
}
