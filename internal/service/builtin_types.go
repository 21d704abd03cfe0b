package service

import (
	"time"

	"github.com/spec-kit/ack-hub/internal/domain"
)

const remoteWorkStatement = "إقرار إلتزام بتعليمات العمل في المناطق النائية"

// BuiltinTypes returns the protected catalog entries in display order.
func BuiltinTypes(now time.Time) []domain.AcknowledgmentType {
	subtitle := "Remote Area Working Acknowledgement"
	body := "أقر بأنني تقدمت بناءاً على رغبتي واختياري بطلب الأنتقال للعمل في المنطقة النائية لمدة سنتين او في اي وقت يحدد حسب مايتطلبه العمل إستناداً إلى أنظمة التنقل في إدارة الأمن الصناعي\n\n" +
		"كما أنني أوافق على الشروط الواردة أدناه الخاصة بالعمل في المناطق النائية:-"

	types := []domain.AcknowledgmentType{
		{
			ID:               "remote-work",
			Title:            "Remote Area Working Acknowledgement",
			ShortDescription: remoteWorkStatement,
			Content: &domain.TypeContent{
				PrimaryStatement: remoteWorkStatement,
				Subtitle:         &subtitle,
				BodyText:         &body,
				NumberedRules: []string{
					"إستخدام السكن الموفر من قبل الشركة طيلة فترة النوبة الأسبوعية.",
					"إستخدام المواصلات الموفرة من قبل الشركة وعدم إستخدام المركبة الشخصية للتنقل للعمل",
					"الإلتزام واتباع جميع أنظمة وتعليمات السلامة وفق سياسات وأنظمة الشركة.",
				},
			},
		},
		{ID: "transfer", Title: "Transfer Acknowledgment", ShortDescription: "Acknowledge transfer policies and procedures"},
		{ID: "safety", Title: "Safety Acknowledgment", ShortDescription: "Acknowledge safety protocols and guidelines"},
		{ID: "security", Title: "Security Acknowledgment", ShortDescription: "Acknowledge security policies and data protection"},
		{ID: "training", Title: "Training Acknowledgment", ShortDescription: "Acknowledge completion of mandatory training"},
	}

	for i := range types {
		types[i].Builtin = true
		types[i].CreatedAt = now
		types[i].UpdatedAt = now
	}
	return types
}

// IsBuiltinTypeID reports whether id names a protected catalog entry.
func IsBuiltinTypeID(id string) bool {
	switch id {
	case "remote-work", "transfer", "safety", "security", "training":
		return true
	}
	return false
}
