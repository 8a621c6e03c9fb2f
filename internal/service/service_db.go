package service

import (
	"context"

	"github.com/MKhiriev/go-cloud-sync/internal/rpc"
)

const (
	ServiceDB        = "db"
	ServiceDBPrivate = "db-private"
)

type dbService struct {
	caller  rpc.Caller
	dbid    string
	service string
	private *dbService
}

// NewDBService returns a [DBService] on the shared "db" namespace; its
// Private method switches to "db-private".
func NewDBService(caller rpc.Caller, dbid string) DBService {
	s := &dbService{caller: caller, dbid: dbid, service: ServiceDB}
	s.private = &dbService{caller: caller, dbid: dbid, service: ServiceDBPrivate}
	s.private.private = s.private
	return s
}

func (s *dbService) Insert(ctx context.Context, coll string, obj any, cb rpc.Callback) {
	s.call(ctx, "insert", cb, coll, obj)
}

func (s *dbService) Update(ctx context.Context, coll string, criteria, obj any, cb rpc.Callback) {
	s.call(ctx, "update", cb, coll, criteria, obj)
}

func (s *dbService) Remove(ctx context.Context, coll string, id any, cb rpc.Callback) {
	s.call(ctx, "remove", cb, coll, id)
}

func (s *dbService) Find(ctx context.Context, coll string, criteria any, cb rpc.Callback) {
	s.call(ctx, "find", cb, coll, criteria)
}

func (s *dbService) Upsert(ctx context.Context, coll string, criteria, obj any, cb rpc.Callback) {
	s.call(ctx, "upsert", cb, coll, criteria, obj)
}

func (s *dbService) Private() DBService {
	return s.private
}

func (s *dbService) call(ctx context.Context, method string, cb rpc.Callback, args ...any) {
	s.caller.Call(ctx, s.service, method, cb, append([]any{s.dbid}, args...)...)
}
