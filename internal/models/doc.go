// Package models defines the data model shared by the API client, the
// session store, and the favorites index.
//
// Two categories of types live here:
//
//  1. Catalog records served by the remote service: [Movie] with its nested
//     [Genre] and [Director], and [User]. These carry JSON tags matching the
//     wire contract and validate required fields on decode via CheckResponse.
//  2. Client-side types: [UserInput] and [UserPatch] for account mutations,
//     and [Session], the durable pairing of a user profile with its bearer
//     token.
//
// Movies are read-only on the client. The only client-driven mutation of a
// User is through profile edits and the favorites add/remove operations.
package models
