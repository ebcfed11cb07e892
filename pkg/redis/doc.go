// Package redis connects the session store to its Redis backend.
//
// Connect wraps go-redis with retry and a bounded connection phase; the
// resulting client is handed to session.NewRedisStore:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client)
//
// Configuration comes from the environment via github.com/caarlos0/env; see
// the Config field tags for variable names and defaults. Healthcheck plugs the
// client into liveness and readiness probes.
package redis
