package repository

import (
	"errors"

	"gorm.io/gorm"
)

// saveDeletion 持久化软删除/恢复状态（deleted_at、deleted_by）
func saveDeletion(db *gorm.DB, model interface{}) error {
	return db.Unscoped().Model(model).Select("deleted_at", "deleted_by").Updates(model).Error
}

// firstOrNil 查询单条记录，不存在时返回 false
func firstOrNil(query *gorm.DB, dest interface{}, conds ...interface{}) (bool, error) {
	if err := query.First(dest, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
