// Package domain contains the core business entities, value objects, and
// validation rules of the work tracker: users, tasks, task statuses, and the
// tri-state Optional field used for partial updates. It has no knowledge of
// storage or transport.
package domain
