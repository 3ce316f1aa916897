package subscriptionController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	subscriptionValidator "lams/validators/subscription"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListPackages(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.Package{})
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var packages []models.Package
	if err := query.Order("id").Find(&packages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch packages!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Package list.", packages)
}

func GetPackage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid package id!", nil)
	}

	db := database.Database.Db

	var pkg models.Package
	if err := db.First(&pkg, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Package not found!", nil)
	}

	var courses []models.PackageCourse
	db.Where("package_id = ?", pkg.ID).Order("id").Find(&courses)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Package details.", fiber.Map{
		"package": pkg,
		"courses": courses,
	})
}

func CreatePackage(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPackage").(*subscriptionValidator.PackageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	userId, _ := c.Locals("userId").(uint)

	db := database.Database.Db

	for _, courseId := range reqData.CourseIDs {
		if err := db.First(&models.Course{}, courseId).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "One or more courses not found!", nil)
		}
	}

	pkg := models.Package{
		Name:        reqData.Name,
		Description: reqData.Description,
		IsActive:    true,
		CreatedBy:   userId,
	}
	if reqData.IsActive != nil {
		pkg.IsActive = *reqData.IsActive
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pkg).Error; err != nil {
			return err
		}
		for _, courseId := range reqData.CourseIDs {
			if err := tx.Create(&models.PackageCourse{PackageID: pkg.ID, CourseID: courseId}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create package!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Package created successfully.", pkg)
}

func UpdatePackage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid package id!", nil)
	}

	db := database.Database.Db

	var pkg models.Package
	if err := db.First(&pkg, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Package not found!", nil)
	}

	reqData, ok := c.Locals("validatedPackage").(*subscriptionValidator.PackageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	pkg.Name = reqData.Name
	pkg.Description = reqData.Description
	if reqData.IsActive != nil {
		pkg.IsActive = *reqData.IsActive
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&pkg).Error; err != nil {
			return err
		}
		// Supplied course ids replace the existing set
		if len(reqData.CourseIDs) > 0 {
			if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.PackageCourse{}).Error; err != nil {
				return err
			}
			for _, courseId := range reqData.CourseIDs {
				if err := tx.First(&models.Course{}, courseId).Error; err != nil {
					return err
				}
				if err := tx.Create(&models.PackageCourse{PackageID: pkg.ID, CourseID: courseId}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update package!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Package updated successfully.", pkg)
}

// DeletePackage deactivates the package; mappings referencing it stay valid.
func DeletePackage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid package id!", nil)
	}

	db := database.Database.Db

	var pkg models.Package
	if err := db.First(&pkg, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Package not found!", nil)
	}

	if err := db.Model(&pkg).Update("is_active", false).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to deactivate package!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Package deactivated successfully.", nil)
}
