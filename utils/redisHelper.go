package utils

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/namnm309/evdealer-backend/config"
)

var mutex sync.Mutex

func GetCacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

/* generic functions */

func GetTypeName[T any]() string {
	var v T
	typeOfT := reflect.TypeOf(v)
	return typeOfT.Name()
}

/* Redis */

// catalog-style models expire so price/stock edits show up without manual eviction
func typeHasExpiration(typeName string) bool {
	expirableTypes := map[string]bool{
		"Product":   true,
		"Promotion": true,
		"Dealer":    true,
		"Region":    true,
	}
	return expirableTypes[typeName]
}

// store instance, obj should be a pointer
func StoreRedis[T any](obj any, id int) error {
	typeName := GetTypeName[T]()
	key := typeName + ":" + fmt.Sprint(id)

	var duration time.Duration
	if typeHasExpiration(typeName) {
		duration = GetCacheLifespan()
	}
	return config.SetRedisObject(key, &obj, duration)
}

// store object list, dealerId 0 means the shared (manufacturer) list
func StoreRedisList[T any](obj any, dealerId int) error {
	var key string
	typeName := GetTypeName[T]()
	if dealerId == 0 {
		key = typeName + "List"
	} else {
		key = typeName + "List:" + fmt.Sprint(dealerId)
	}

	var duration time.Duration
	if typeHasExpiration(typeName) {
		duration = GetCacheLifespan()
	}
	return config.SetRedisObject(key, &obj, duration)
}

// get from redis
// returns nil if does not exist
func RetrieveRedis[T any](id int) (*T, error) {
	var result *T
	key := GetTypeName[T]() + ":" + fmt.Sprint(id)
	exists, err := config.GetRedisObject(key, &result)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return result, nil
}

// retrieve a list, dealerId 0 means the shared (manufacturer) list
func RetrieveRedisList[T any](dealerId int) ([]*T, error) {
	var key string
	if dealerId == 0 {
		key = GetTypeName[T]() + "List"
	} else {
		key = GetTypeName[T]() + "List:" + fmt.Sprint(dealerId)
	}

	var result []*T
	exists, err := config.GetRedisObject(key, &result)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return result, nil
}

// clear list, TypeList:$dealer_id
func RemoveRedisList[T any](dealerId int) error {
	var key string
	if dealerId == 0 {
		key = GetTypeName[T]() + "List"
	} else {
		key = GetTypeName[T]() + "List:" + fmt.Sprint(dealerId)
	}
	return config.RemoveRedisKey(key)
}

// remove an instance, Type:$id
func RemoveRedisItem[T any](id int) error {
	key := GetTypeName[T]() + ":" + fmt.Sprint(id)
	return config.RemoveRedisKey(key)
}

// GetSequence returns the next per-dealer sequence number for T,
// seeded from the db max when the redis counter is cold.
func GetSequence[T any](ctx context.Context, dealerId int) (int64, error) {
	var model T
	mutex.Lock()
	defer mutex.Unlock()
	cacheKey := fmt.Sprint(dealerId) + "-" + strings.ToLower(GetTypeName[T]()) + "_seq"
	var seqNo int64
	var err error
	db := config.GetDB()

	for {
		seqNo, err = config.GetRedisCounter(ctx, cacheKey)
		if err != nil {
			return 0, err
		}
		// if not found in redis, get from db
		if seqNo == 1 {
			// get max seq no from db
			var dbSeq *int64
			if err := db.WithContext(ctx).Model(&model).Select("max(sequence_no)").
				Where("dealer_id = ?", dealerId).
				Scan(&dbSeq).Error; err != nil {
				return 0, err
			}
			// in case db has no records yet
			if dbSeq == nil {
				seqNo = 0
			} else {
				seqNo = *dbSeq
			}
			// set redis
			seqNo++
			if err := config.SetRedisObject(cacheKey, &seqNo, 0); err != nil {
				return 0, err
			}
		}
		// check if sequence number exists in db
		err = ValidateUnique[T](ctx, dealerId, "sequence_no", seqNo, 0)
		if err == nil {
			break
		}
	}
	return seqNo, nil
}
